package matching

import (
	"math"
	"testing"
)

func durationCandidates(durations ...float64) []Candidate {
	out := make([]Candidate, len(durations))
	for i, d := range durations {
		out[i] = Candidate{ID: string(rune('a' + i)), Duration: d}
	}
	return out
}

func TestFindByDurationPicksClosest(t *testing.T) {
	candidates := durationCandidates(214.9, 215.0, 215.2)
	got, ok := FindByDuration(215.05, candidates, DefaultDurationTolerance)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Duration != 215.0 {
		t.Fatalf("picked %v, want 215.0", got.Duration)
	}
}

func TestFindByDurationTieKeepsFirst(t *testing.T) {
	candidates := durationCandidates(100.0, 100.0)
	got, ok := FindByDuration(100.0, candidates, 0)
	if !ok || got.ID != "a" {
		t.Fatalf("expected first candidate, got %+v", got)
	}
}

func TestFindByDurationMisses(t *testing.T) {
	tests := []struct {
		name       string
		target     float64
		tolerance  float64
		candidates []Candidate
	}{
		{"outside tolerance", 200, 0.1, durationCandidates(199.5, 200.5)},
		{"no candidates", 200, 0.1, nil},
		{"nan target", math.NaN(), 0.1, durationCandidates(1)},
		{"nan duration", 1, 0.1, durationCandidates(math.NaN())},
		{"negative tolerance", 10, -5, durationCandidates(10.01)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := FindByDuration(tt.target, tt.candidates, tt.tolerance); ok {
				t.Fatalf("expected miss, got %+v", got)
			}
		})
	}
}

func TestWithinToleranceIsMonotonic(t *testing.T) {
	candidates := durationCandidates(59.8, 59.95, 60, 60.04, 60.3, 61)
	target := 60.0
	previous := len(candidates) + 1
	for _, tol := range []float64{1, 0.5, 0.1, 0.05, 0.01, 0} {
		n := len(WithinTolerance(target, candidates, tol))
		if n > previous {
			t.Fatalf("tolerance %v admits %d candidates, more than %d at a wider tolerance", tol, n, previous)
		}
		previous = n
	}
	if n := len(WithinTolerance(target, candidates, 0)); n != 1 {
		t.Fatalf("zero tolerance should admit only the exact duration, got %d", n)
	}
}
