package library_test

import (
	"context"
	"testing"

	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/testsupport/memlib"
)

func TestDryRunDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	lib := memlib.New(library.Track{ID: "1", Name: "One"})
	dry := library.DryRun(lib, logging.NewNop())

	name := "Changed"
	if err := dry.UpdateTrack(ctx, "1", library.Fields{Name: &name}); err != nil {
		t.Fatalf("UpdateTrack: %v", err)
	}
	if track, _ := lib.Track("1"); track.Name != "One" {
		t.Fatalf("dry run wrote through: %+v", track)
	}
	if lib.Updates() != 0 {
		t.Fatalf("dry run counted %d updates", lib.Updates())
	}
	if id, ok, _ := dry.FindByExactName(ctx, "One"); !ok || id != "1" {
		t.Fatal("expected reads to pass through")
	}
}
