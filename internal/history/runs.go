package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"amutils/internal/importer"
	"amutils/internal/tracksheet"
)

// ErrRunNotFound reports an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run is a stored import run.
type Run struct {
	ID         string
	Source     string
	Encoding   string
	Format     tracksheet.Format
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    importer.Summary
}

// Row is a stored per-record outcome.
type Row struct {
	Line      int
	Query     string
	Status    importer.Status
	Via       importer.Via
	TrackID   string
	Score     int
	Reason    string
	Hint      string
	ErrorKind string
	Error     string
}

const runColumns = "id, source, encoding, format, dry_run, started_at, finished_at, rows, updated_by_id, updated_by_path, updated_by_filename, updated_by_duration, failed, skipped, unreadable_tracks"

var _ importer.Recorder = (*Store)(nil)

// RecordRun stores report and its outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, report importer.Report) error {
	if report.RunID == "" {
		return errors.New("record run: missing run id")
	}
	return retryOnBusy(ctx, func() error {
		return s.recordRun(ctx, report)
	})
}

func (s *Store) recordRun(ctx context.Context, report importer.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sum := report.Summary
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		report.RunID,
		report.Source,
		nullableString(report.Encoding),
		nullableString(string(report.Format)),
		boolToInt(report.DryRun),
		formatTime(report.StartedAt),
		formatTime(report.FinishedAt),
		sum.Rows,
		sum.UpdatedByID,
		sum.UpdatedByPath,
		sum.UpdatedByFilename,
		sum.UpdatedByDuration,
		sum.Failed,
		sum.Skipped,
		sum.UnreadableTracks,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", report.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_rows (run_id, seq, line, query, status, via, track_id, score, reason, hint, error_kind, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range report.Outcomes {
		var message string
		if o.Err != nil {
			message = o.Err.Error()
		}
		if _, err := stmt.ExecContext(ctx,
			report.RunID,
			i,
			o.Line,
			nullableString(o.Query),
			string(o.Status),
			string(o.Via),
			nullableString(o.TrackID),
			o.Match.Score,
			nullableString(string(o.Match.Reason)),
			nullableString(o.Hint),
			nullableString(importer.Kind(o.Err)),
			nullableString(message),
		); err != nil {
			return fmt.Errorf("insert row %d: %w", o.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by id.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// Rows returns the stored outcomes of a run in CSV order. With failedOnly
// set, only rows that did not update the library are returned.
func (s *Store) Rows(ctx context.Context, runID string, failedOnly bool) ([]Row, error) {
	query := `SELECT line, query, status, via, track_id, score, reason, hint, error_kind, error_message
		FROM run_rows WHERE run_id = ?`
	if failedOnly {
		query += " AND status = 'failed'"
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r                                           Row
			status, via                                 string
			q, trackID, reason, hint, kind, errorString sql.NullString
		)
		if err := rows.Scan(&r.Line, &q, &status, &via, &trackID, &r.Score, &reason, &hint, &kind, &errorString); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Query = q.String
		r.Status = importer.Status(status)
		r.Via = importer.Via(via)
		r.TrackID = trackID.String
		r.Reason = reason.String
		r.Hint = hint.String
		r.ErrorKind = kind.String
		r.Error = errorString.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	var removed int64
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin prune tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		const stale = "SELECT id FROM runs ORDER BY started_at DESC, id LIMIT -1 OFFSET ?"
		if _, err := tx.ExecContext(ctx, "DELETE FROM run_rows WHERE run_id IN ("+stale+")", keep); err != nil {
			return fmt.Errorf("prune rows: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id IN ("+stale+")", keep)
		if err != nil {
			return fmt.Errorf("prune runs: %w", err)
		}
		if removed, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("prune runs: %w", err)
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run                  Run
		encoding, format     sql.NullString
		dryRun               int
		startedRaw, finished sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Source,
		&encoding,
		&format,
		&dryRun,
		&startedRaw,
		&finished,
		&run.Summary.Rows,
		&run.Summary.UpdatedByID,
		&run.Summary.UpdatedByPath,
		&run.Summary.UpdatedByFilename,
		&run.Summary.UpdatedByDuration,
		&run.Summary.Failed,
		&run.Summary.Skipped,
		&run.Summary.UnreadableTracks,
	); err != nil {
		return Run{}, err
	}
	run.Encoding = encoding.String
	run.Format = tracksheet.Format(format.String)
	run.DryRun = dryRun != 0
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finished)
	return run, nil
}
