package replace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/music"
)

// Library is the subset of the Music bridge a replacement needs.
type Library interface {
	FindTrack(ctx context.Context, name, artist, album string) (*music.TrackInfo, error)
	DeleteTrack(ctx context.Context, id string) error
	AddFile(ctx context.Context, path string) (string, error)
	RestoreTrack(ctx context.Context, id string, playCount int, favorite bool) error
	DuplicateToPlaylist(ctx context.Context, id, playlistID string) error
}

// Result describes what happened to one file.
type Result struct {
	Song  Song
	OldID string
	NewID string
	// Playlists counts the playlists the new track was added to.
	Playlists int
	Err       error
}

// Replaced reports whether an existing track was swapped out.
func (r Result) Replaced() bool {
	return r.OldID != "" && r.NewID != ""
}

// Replacer runs replacements against a Library.
type Replacer struct {
	lib      Library
	readTags TagReader
	logger   *slog.Logger
}

// Option customises the Replacer.
type Option func(*Replacer)

// WithTagReader overrides how tags are read.
func WithTagReader(read TagReader) Option {
	return func(r *Replacer) { r.readTags = read }
}

// New constructs a Replacer.
func New(lib Library, logger *slog.Logger, opts ...Option) *Replacer {
	r := &Replacer{lib: lib, logger: logging.NewComponentLogger(logger, "replace")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replaces every file Discover finds under target. Per-file failures are
// reported in the results; the error is for discovery and cancellation.
func (r *Replacer) Run(ctx context.Context, target string) ([]Result, error) {
	files, err := Discover(target)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, r.ReplaceFile(ctx, path))
	}
	return results, nil
}

// ReplaceFile replaces the library track matching path's tags with path.
func (r *Replacer) ReplaceFile(ctx context.Context, path string) Result {
	song, tagErr := ReadSong(path, r.readTags)
	logger := r.logger.With(logging.String("file", path), logging.String("title", song.Title))
	if tagErr != nil {
		logger.Debug("tags unreadable; using file name as title", logging.Error(tagErr))
	}
	result := Result{Song: song}

	info, err := r.lib.FindTrack(ctx, song.Title, song.Artist, song.Album)
	switch {
	case errors.Is(err, library.ErrTrackNotFound):
		info = nil
		logger.Info("no existing track; adding file")
	case err != nil:
		result.Err = fmt.Errorf("find existing track: %w", err)
		logging.WarnWithContext(logger, "replace skipped", "replace_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the Music app is running"),
			logging.String(logging.FieldImpact, "file not added"),
		)
		return result
	}

	if info != nil {
		if err := r.lib.DeleteTrack(ctx, info.ID); err != nil {
			result.Err = fmt.Errorf("delete track %s: %w", info.ID, err)
			logging.WarnWithContext(logger, "replace skipped", "replace_delete_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "existing track kept; file not added"),
			)
			return result
		}
		result.OldID = info.ID
	}

	newID, err := r.lib.AddFile(ctx, path)
	if err != nil {
		result.Err = fmt.Errorf("add file: %w", err)
		logging.ErrorWithContext(logger, "file not added", "replace_add_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "re-add the file manually; the previous track was already removed"),
		)
		return result
	}
	result.NewID = newID
	if info == nil {
		return result
	}

	if err := r.lib.RestoreTrack(ctx, newID, info.PlayCount, info.Favorite); err != nil {
		result.Err = fmt.Errorf("restore play count: %w", err)
		logging.WarnWithContext(logger, "play count not restored", "replace_restore_failed",
			logging.Error(err),
			logging.Int("play_count", info.PlayCount),
			logging.Bool("favorite", info.Favorite),
			logging.String(logging.FieldImpact, "new track starts with no history"),
		)
	}
	for _, playlist := range info.Playlists {
		if err := r.lib.DuplicateToPlaylist(ctx, newID, playlist.ID); err != nil {
			logging.WarnWithContext(logger, "playlist membership not restored", "replace_playlist_failed",
				logging.String("playlist", playlist.Name),
				logging.Error(err),
				logging.String(logging.FieldImpact, "track missing from playlist"),
			)
			if result.Err == nil {
				result.Err = fmt.Errorf("add to playlist %q: %w", playlist.Name, err)
			}
			continue
		}
		result.Playlists++
	}
	logger.Info("track replaced",
		logging.String("old_id", result.OldID),
		logging.String("new_id", newID),
		logging.Int("play_count", info.PlayCount),
		logging.Int("playlists", result.Playlists),
	)
	return result
}
