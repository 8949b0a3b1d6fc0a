package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("hello world"), 0},
		{"identical", NewFingerprint("Song (Live)"), NewFingerprint("live song"), 1},
		{"disjoint", NewFingerprint("apple banana"), NewFingerprint("dog frog"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizeKeepsNonLatin(t *testing.T) {
	got := Tokenize("夜に駆ける - YOASOBI")
	if len(got) != 2 || got[0] != "夜に駆ける" || got[1] != "yoasobi" {
		t.Fatalf("Tokenize = %q", got)
	}
	if NewFingerprint(" -- ") != nil {
		t.Fatal("expected nil fingerprint for punctuation")
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("Song", "song"); got != 1 {
		t.Fatalf("case-folded equal = %v", got)
	}
	if got := Similarity("", "song"); got != 0 {
		t.Fatalf("empty = %v", got)
	}
	close := Similarity("Bohemian Rhapsody", "Bohemian Rapsody")
	far := Similarity("Bohemian Rhapsody", "Yellow Submarine")
	if close <= far {
		t.Fatalf("expected typo to score higher: %v <= %v", close, far)
	}
	if got := Similarity("Live - Song Title", "Song Title Live"); got < 0.999 {
		t.Fatalf("reordered tokens = %v", got)
	}
}

func TestNearest(t *testing.T) {
	names := []string{"Yellow Submarine", "Bohemian Rapsody", "Bohemian Rapsody"}
	got, ok := Nearest("Bohemian Rhapsody", names, 0.8)
	if !ok || got.Index != 1 || got.Name != "Bohemian Rapsody" {
		t.Fatalf("Nearest = %+v, %v", got, ok)
	}
	if _, ok := Nearest("Completely different", names, 0.99); ok {
		t.Fatal("expected no match above threshold")
	}
	if _, ok := Nearest("x", nil, 0); ok {
		t.Fatal("expected no match for empty names")
	}
}
