package matching

import (
	"amutils/internal/library"
	"amutils/internal/pathkey"
)

// Candidate is a library track prepared for matching.
type Candidate struct {
	ID       string
	Name     string
	Keys     pathkey.KeySet
	Duration float64
}

// NewCandidate derives the candidate keys for track.
func NewCandidate(track library.Track) Candidate {
	return Candidate{
		ID:       track.ID,
		Name:     track.Name,
		Keys:     pathkey.Normalize(track.FilePath),
		Duration: track.Duration,
	}
}

// BuildCandidates converts enumeration entries into candidates in order.
// Entries that failed to read are counted and left out.
func BuildCandidates(entries []library.TrackEntry) ([]Candidate, int) {
	candidates := make([]Candidate, 0, len(entries))
	unreadable := 0
	for _, entry := range entries {
		if entry.Err != nil {
			unreadable++
			continue
		}
		candidates = append(candidates, NewCandidate(entry.Track))
	}
	return candidates, unreadable
}
