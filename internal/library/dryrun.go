package library

import (
	"context"
	"log/slog"

	"amutils/internal/logging"
)

type dryRun struct {
	Repository
	logger *slog.Logger
}

// DryRun wraps repo so reads pass through and updates are only logged.
func DryRun(repo Repository, logger *slog.Logger) Repository {
	return &dryRun{Repository: repo, logger: logging.NewComponentLogger(logger, "dry-run")}
}

func (d *dryRun) UpdateTrack(_ context.Context, id string, fields Fields) error {
	d.logger.Info("would update track",
		logging.String("track_id", id),
		logging.String("fields", fields.String()),
	)
	return nil
}
