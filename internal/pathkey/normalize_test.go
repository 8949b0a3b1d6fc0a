package pathkey

import (
	"reflect"
	"testing"
)

func TestNormalizeDerivesKeys(t *testing.T) {
	keys := Normalize("/Users/me/Music/Artist/Album/01 Café del Mar!.m4a")

	if keys.CleanPath != "/Users/me/Music/Artist/Album/01 Café del Mar!.m4a" {
		t.Fatalf("unexpected clean path %q", keys.CleanPath)
	}
	if keys.Filename != "01 Café del Mar!.m4a" {
		t.Fatalf("unexpected filename %q", keys.Filename)
	}
	if keys.Basename != "01 Café del Mar!" {
		t.Fatalf("unexpected basename %q", keys.Basename)
	}
	if keys.SimpleBasename != "01 café del mar" {
		t.Fatalf("unexpected simple basename %q", keys.SimpleBasename)
	}
	if keys.ASCIIName != "01 caf del mar" {
		t.Fatalf("unexpected ascii name %q", keys.ASCIIName)
	}
	if keys.Dirname != "/Users/me/Music/Artist/Album" {
		t.Fatalf("unexpected dirname %q", keys.Dirname)
	}
	if keys.Parent() != "Album" {
		t.Fatalf("unexpected parent %q", keys.Parent())
	}
	want := []string{"Artist", "Album", "01 Café del Mar!.m4a"}
	if !reflect.DeepEqual(keys.Segments, want) {
		t.Fatalf("segments = %v, want %v", keys.Segments, want)
	}
	if keys.IsBundle {
		t.Fatal("did not expect bundle")
	}
}

func TestNormalizeStripsInvisibleCharactersAndComposes(t *testing.T) {
	decomposed := "/Music/Cafe\u0301\u200b\ufeff.m4a"
	keys := Normalize(decomposed)
	if keys.Filename != "Café.m4a" {
		t.Fatalf("expected composed filename, got %q", keys.Filename)
	}
	if !reflect.DeepEqual(keys, Normalize("/Music/Café.m4a")) {
		t.Fatalf("expected equal key sets for equivalent inputs")
	}
}

func TestNormalizeStripsDuplicateSuffix(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single", "/Music/Song 2.m4a", "/Music/Song.m4a"},
		{"repeated", "/Music/Song 2 3.m4a", "/Music/Song.m4a"},
		{"trailing slash", "/Music/Song 2.m4a/ ", "/Music/Song.m4a"},
		{"no suffix", "/Music/Song2.m4a", "/Music/Song2.m4a"},
		{"no extension", "/Music/Song 2", "/Music/Song 2"},
		{"bundle keeps suffix", "/Lib/Track Name 3.movpkg", "/Lib/Track Name 3.movpkg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw).CleanPath; got != tt.want {
				t.Fatalf("CleanPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeBundle(t *testing.T) {
	keys := Normalize("/Lib/Track Name 3.movpkg/")
	if !keys.IsBundle {
		t.Fatal("expected bundle")
	}
	if keys.Basename != "Track Name 3" {
		t.Fatalf("unexpected basename %q", keys.Basename)
	}
	if keys.SimpleBasename != "track name 3" {
		t.Fatalf("bundle simple basename should keep its number, got %q", keys.SimpleBasename)
	}
	if got := StripTrailingNumber(keys.Basename); got != "Track Name" {
		t.Fatalf("StripTrailingNumber = %q", got)
	}
}

func TestNormalizeSimpleBasenameStripsNumberAgain(t *testing.T) {
	keys := Normalize("/Music/Song 2!.m4a")
	if keys.SimpleBasename != "song" {
		t.Fatalf("unexpected simple basename %q", keys.SimpleBasename)
	}
}

func TestNormalizeNonLatinASCIIName(t *testing.T) {
	keys := Normalize("/Music/夜に駆ける.m4a")
	if keys.SimpleBasename != "夜に駆ける" {
		t.Fatalf("unexpected simple basename %q", keys.SimpleBasename)
	}
	if keys.ASCIIName != "" {
		t.Fatalf("expected empty ascii name, got %q", keys.ASCIIName)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "/", "\u200b\ufeff"} {
		keys := Normalize(raw)
		if !reflect.DeepEqual(keys, KeySet{}) {
			t.Fatalf("Normalize(%q) = %+v, want zero value", raw, keys)
		}
		if !keys.Empty() {
			t.Fatalf("expected Empty for %q", raw)
		}
	}
}

func TestNormalizeRelativeFilename(t *testing.T) {
	keys := Normalize(".hidden")
	if keys.Basename != ".hidden" || keys.Dirname != "" || keys.Parent() != "" {
		t.Fatalf("unexpected keys %+v", keys)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"/Music/Song 2.m4a",
		"/Music/Song 2 2.m4a/",
		"/Music/Cafe\u0301 1.mp3 ",
		"/Lib/Track Name 3.movpkg",
		"relative/dir/Vol. 2.flac",
		"/Music/\u200bHidden\u2029 7.aac",
		"no-extension 4",
		"/Music/日本語 2.m4a",
		"",
	}
	for _, raw := range inputs {
		first := Normalize(raw)
		second := Normalize(first.CleanPath)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("not idempotent for %q:\nfirst  %+v\nsecond %+v", raw, first, second)
		}
	}
}
