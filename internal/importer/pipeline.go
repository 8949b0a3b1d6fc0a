package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/matching"
	"amutils/internal/textutil"
	"amutils/internal/tracksheet"
)

// hintThreshold is the minimum name similarity worth suggesting.
const hintThreshold = 0.8

// Recorder persists a finished run.
type Recorder interface {
	RecordRun(ctx context.Context, report Report) error
}

// Pipeline resolves sheet rows against a library repository.
type Pipeline struct {
	repo      library.Repository
	matcher   *matching.Matcher
	tolerance float64
	recorder  Recorder
	dryRun    bool
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Option customises the Pipeline.
type Option func(*Pipeline)

// WithDurationTolerance sets the duration fallback tolerance in seconds.
func WithDurationTolerance(seconds float64) Option {
	return func(p *Pipeline) { p.tolerance = seconds }
}

// WithRecorder persists every finished run.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithDryRun resolves rows without writing to the library.
func WithDryRun(enabled bool) Option {
	return func(p *Pipeline) { p.dryRun = enabled }
}

// WithClock overrides the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New constructs a Pipeline. The repository also serves exact-name lookups
// for bundle paths.
func New(repo library.Repository, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		repo:      repo,
		tolerance: matching.DefaultDurationTolerance,
		logger:    logging.NewComponentLogger(logger, "importer"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.dryRun {
		p.repo = library.DryRun(repo, logger)
	}
	p.matcher = matching.NewMatcher(logger, matching.WithNameLookup(repo))
	return p
}

// Run applies every row of sheet in order and returns the run report. Row
// failures are counted in the report; the returned error is reserved for
// failures that stop the run (listing the library, cancellation).
func (p *Pipeline) Run(ctx context.Context, sheet *tracksheet.Sheet) (Report, error) {
	report := Report{
		RunID:     p.newID(),
		Source:    sheet.Source,
		Encoding:  sheet.Encoding,
		Format:    sheet.Format,
		DryRun:    p.dryRun,
		StartedAt: p.now(),
	}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("import started",
		logging.String("source", sheet.Source),
		logging.String("format", string(sheet.Format)),
		logging.String("encoding", sheet.Encoding),
		logging.Int("rows", len(sheet.Rows)),
		logging.Bool("dry_run", p.dryRun),
	)

	var candidates []matching.Candidate
	if sheet.Format == tracksheet.FormatMatched {
		entries, err := p.repo.ListTracks(ctx)
		if err != nil {
			return report, fmt.Errorf("list library tracks: %w", err)
		}
		var unreadable int
		candidates, unreadable = matching.BuildCandidates(entries)
		report.Summary.UnreadableTracks = unreadable
		if unreadable > 0 {
			logging.WarnWithContext(logger, "some library tracks could not be read", "unreadable_tracks",
				logging.Int("unreadable", unreadable),
				logging.String(logging.FieldErrorHint, "tracks without a readable location are excluded from matching"),
				logging.String(logging.FieldImpact, "rows for those tracks can only match by duration or fail"),
			)
		}
		logger.Debug("candidates built", logging.Int("candidates", len(candidates)))
	}

	var runErr error
	for _, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		var outcome Outcome
		if sheet.Format == tracksheet.FormatStandard {
			outcome = p.ResolveStandard(ctx, row)
		} else {
			outcome = p.ResolveRow(ctx, row, candidates)
		}
		report.Summary.add(outcome)
		report.Outcomes = append(report.Outcomes, outcome)
	}
	report.FinishedAt = p.now()

	s := report.Summary
	logger.Info("import finished",
		logging.Int("rows", s.Rows),
		logging.Int("updated", s.Updated()),
		logging.Int("updated_by_id", s.UpdatedByID),
		logging.Int("updated_by_path", s.UpdatedByPath),
		logging.Int("updated_by_filename", s.UpdatedByFilename),
		logging.Int("updated_by_duration", s.UpdatedByDuration),
		logging.Int("failed", s.Failed),
		logging.Int("skipped", s.Skipped),
		logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)

	if p.recorder != nil {
		// A cancelled run is still recorded with the rows it completed.
		if err := p.recorder.RecordRun(context.WithoutCancel(ctx), report); err != nil {
			logging.WarnWithContext(logger, "import history not recorded", "history_write_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check history.path and disk space"),
				logging.String(logging.FieldImpact, "run missing from amutils history"),
			)
		}
	}
	return report, runErr
}

// ResolveStandard applies a standard row by its id.
func (p *Pipeline) ResolveStandard(ctx context.Context, row tracksheet.Row) Outcome {
	outcome := Outcome{Line: row.Line, Query: row.ID, Via: ViaNone, Fields: row.Fields()}
	logger := p.rowLogger(ctx, row)

	if row.ID == "" {
		return p.skip(logger, outcome, rowError(ErrMalformedRow, row.Line, "missing id", nil))
	}
	if outcome.Fields.IsEmpty() {
		return p.skip(logger, outcome, nil)
	}
	outcome.Via = ViaID
	outcome.TrackID = row.ID
	return p.apply(ctx, logger, outcome)
}

// ResolveRow resolves a matched row against candidates: full path, then file
// name, then duration when the row has a title and a duration.
func (p *Pipeline) ResolveRow(ctx context.Context, row tracksheet.Row, candidates []matching.Candidate) Outcome {
	outcome := Outcome{Line: row.Line, Query: row.Path, Via: ViaNone, Fields: row.Fields()}
	logger := p.rowLogger(ctx, row)

	if row.Path == "" {
		return p.skip(logger, outcome, rowError(ErrMalformedRow, row.Line, "missing file path", nil))
	}
	if outcome.Fields.IsEmpty() {
		return p.skip(logger, outcome, nil)
	}

	if result, ok := p.matcher.FindBestMatch(ctx, row.Path, candidates); ok {
		outcome.Via, outcome.Match, outcome.TrackID = ViaPath, result, result.CandidateID
		return p.apply(ctx, logger, outcome)
	}

	if name := fileName(row.Path); name != "" && name != row.Path {
		if result, ok := p.matcher.FindBestMatch(ctx, name, candidates); ok {
			outcome.Via, outcome.Match, outcome.TrackID = ViaFilename, result, result.CandidateID
			return p.apply(ctx, logger, outcome)
		}
	}

	if row.HasDuration && row.Name != "" {
		if candidate, ok := matching.FindByDuration(row.Duration, candidates, p.tolerance); ok {
			if n := len(matching.WithinTolerance(row.Duration, candidates, p.tolerance)); n > 1 {
				logger.Debug("duration match ambiguous; closest kept",
					logging.Float64("duration", row.Duration),
					logging.Int("within_tolerance", n),
				)
			}
			outcome.Via, outcome.TrackID = ViaDuration, candidate.ID
			outcome.Match = matching.Result{CandidateID: candidate.ID, Reason: matching.ReasonDuration}
			return p.apply(ctx, logger, outcome)
		}
	}

	outcome.Status = StatusFailed
	outcome.Err = rowError(ErrNotFound, row.Line, row.Path, nil)
	outcome.Hint = nearestName(row, candidates)
	attrs := []logging.Attr{
		logging.String("path", row.Path),
		logging.String("title", row.Name),
		logging.String(logging.FieldErrorHint, "check the File Directory column against the library path"),
	}
	if outcome.Hint != "" {
		attrs = append(attrs, logging.String("nearest", outcome.Hint))
	}
	logging.WarnWithContext(logger, "no library track matched row", "row_not_found", attrs...)
	return outcome
}

func (p *Pipeline) apply(ctx context.Context, logger *slog.Logger, outcome Outcome) Outcome {
	if err := p.repo.UpdateTrack(ctx, outcome.TrackID, outcome.Fields); err != nil {
		outcome.Status = StatusFailed
		marker, hint := ErrUpdateFailure, "check that the Music app is running and the track is editable"
		if errors.Is(err, library.ErrTrackNotFound) {
			marker, hint = ErrNotFound, "the id no longer exists in the library; re-export and retry"
		}
		outcome.Err = rowError(marker, outcome.Line, outcome.TrackID, err)
		logging.WarnWithContext(logger, "track update failed", "row_update_failed",
			logging.String(logging.FieldTrackID, outcome.TrackID),
			logging.String("via", string(outcome.Via)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hint),
		)
		return outcome
	}
	outcome.Status = StatusUpdated
	attrs := []logging.Attr{
		logging.String(logging.FieldTrackID, outcome.TrackID),
		logging.String("via", string(outcome.Via)),
		logging.String("fields", strings.Join(outcome.Fields.Names(), ",")),
	}
	if outcome.Via != ViaID && outcome.Via != ViaDuration {
		attrs = append(attrs,
			logging.Int("score", outcome.Match.Score),
			logging.String("reason", outcome.Match.Reason.String()),
		)
	}
	logger.Info("track updated", logging.Args(attrs...)...)
	return outcome
}

func (p *Pipeline) skip(logger *slog.Logger, outcome Outcome, err *RowError) Outcome {
	outcome.Status = StatusSkipped
	if err != nil {
		outcome.Err = err
		logging.WarnWithContext(logger, "row skipped", "row_malformed",
			logging.String("detail", err.Detail),
			logging.String(logging.FieldErrorHint, "fill in the identifying column"),
		)
		return outcome
	}
	logger.Debug("row skipped; no updatable fields")
	return outcome
}

func (p *Pipeline) rowLogger(ctx context.Context, row tracksheet.Row) *slog.Logger {
	return logging.WithContext(ctx, p.logger).With(logging.Int(logging.FieldRow, row.Line))
}

// fileName returns the final path component. Both slash styles separate
// components so paths exported on Windows retry by file name.
func fileName(p string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(p), `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func nearestName(row tracksheet.Row, candidates []matching.Candidate) string {
	query := row.Name
	if query == "" {
		name := fileName(row.Path)
		query = strings.TrimSuffix(name, path.Ext(name))
	}
	if query == "" || len(candidates) == 0 {
		return ""
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	match, ok := textutil.Nearest(query, names, hintThreshold)
	if !ok {
		return ""
	}
	return match.Name
}
