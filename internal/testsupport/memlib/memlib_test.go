package memlib_test

import (
	"context"
	"errors"
	"testing"

	"amutils/internal/library"
	"amutils/internal/testsupport/memlib"
)

func TestLibrary(t *testing.T) {
	ctx := context.Background()
	lib := memlib.New(
		library.Track{ID: "1", Name: "One"},
		library.Track{ID: "2", Name: "Two"},
	)
	lib.AddBroken("3", errors.New("missing value"))

	entries, err := lib.ListTracks(ctx)
	if err != nil {
		t.Fatalf("ListTracks: %v", err)
	}
	if len(entries) != 3 || len(library.Tracks(entries)) != 2 {
		t.Fatalf("unexpected entries %+v", entries)
	}

	id, ok, err := lib.FindByExactName(ctx, "Two")
	if err != nil || !ok || id != "2" {
		t.Fatalf("FindByExactName = %q %v %v", id, ok, err)
	}

	name := "Renamed"
	if err := lib.UpdateTrack(ctx, "2", library.Fields{Name: &name}); err != nil {
		t.Fatalf("UpdateTrack: %v", err)
	}
	if track, _ := lib.Track("2"); track.Name != "Renamed" {
		t.Fatalf("expected rename, got %+v", track)
	}
	if err := lib.UpdateTrack(ctx, "3", library.Fields{Name: &name}); !errors.Is(err, library.ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound for broken entry, got %v", err)
	}
	if lib.Updates() != 1 {
		t.Fatalf("Updates = %d", lib.Updates())
	}
}
