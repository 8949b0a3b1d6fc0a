package playtime

import (
	"math"
	"testing"

	"amutils/internal/library"
)

func TestCompute(t *testing.T) {
	tracks := []library.Track{
		{Duration: 200, PlayCount: 3},
		{Duration: 61.5, PlayCount: 2},
		{Duration: 300, PlayCount: 0},
		{Duration: math.NaN(), PlayCount: 4},
		{Duration: 100, PlayCount: -1},
	}
	got := Compute(tracks)
	if got.Tracks != 5 || got.Seconds != 723 {
		t.Fatalf("Compute = %+v", got)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		seconds float64
		want    Breakdown
		text    string
	}{
		{0, Breakdown{}, "0 days, 0 hrs, 0 mins, 0 seconds (0 minutes)"},
		{59.9, Breakdown{Seconds: 59}, "0 days, 0 hrs, 0 mins, 59 seconds (0 minutes)"},
		{90061, Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1, TotalMinutes: 1501}, "1 days, 1 hrs, 1 mins, 1 seconds (1501 minutes)"},
		{-5, Breakdown{}, "0 days, 0 hrs, 0 mins, 0 seconds (0 minutes)"},
	}
	for _, tt := range tests {
		got := Split(tt.seconds)
		if got != tt.want {
			t.Fatalf("Split(%v) = %+v, want %+v", tt.seconds, got, tt.want)
		}
		if got.String() != tt.text {
			t.Fatalf("String = %q", got.String())
		}
	}
}
