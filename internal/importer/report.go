package importer

import (
	"time"

	"amutils/internal/library"
	"amutils/internal/matching"
	"amutils/internal/tracksheet"
)

// Status is the final state of a row.
type Status string

const (
	StatusUpdated Status = "updated"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Via records which route resolved a row.
type Via string

const (
	ViaNone     Via = "none"
	ViaID       Via = "id"
	ViaPath     Via = "path"
	ViaFilename Via = "filename"
	ViaDuration Via = "duration"
)

// Outcome is the result of resolving one row.
type Outcome struct {
	Line    int
	Query   string
	Status  Status
	Via     Via
	TrackID string
	Match   matching.Result
	Fields  library.Fields
	// Hint names the closest library track for rows that found no match.
	Hint string
	Err  error
}

// Summary holds run counters.
type Summary struct {
	Rows              int
	UpdatedByID       int
	UpdatedByPath     int
	UpdatedByFilename int
	UpdatedByDuration int
	Failed            int
	Skipped           int
	UnreadableTracks  int
}

// Updated returns the number of rows written to the library.
func (s Summary) Updated() int {
	return s.UpdatedByID + s.UpdatedByPath + s.UpdatedByFilename + s.UpdatedByDuration
}

func (s *Summary) add(o Outcome) {
	s.Rows++
	switch o.Status {
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	case StatusUpdated:
		switch o.Via {
		case ViaID:
			s.UpdatedByID++
		case ViaPath:
			s.UpdatedByPath++
		case ViaFilename:
			s.UpdatedByFilename++
		case ViaDuration:
			s.UpdatedByDuration++
		}
	}
}

// Report describes one import run.
type Report struct {
	RunID      string
	Source     string
	Encoding   string
	Format     tracksheet.Format
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    Summary
	Outcomes   []Outcome
}

// Failures returns the outcomes that did not update the library because of
// an error, in row order.
func (r Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}
