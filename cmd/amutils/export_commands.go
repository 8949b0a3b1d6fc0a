package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/tracksheet"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file-or-folder]",
		Short: "Export tracks to CSV (id, name, album, artist, play count, favourite)",
		Long: "Writes the library as a UTF-8 CSV with a byte order mark. A target that\n" +
			"does not end in .csv is treated as a folder and receives " + tracksheet.DefaultExportName + ".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targetArg(args)
			if err != nil {
				return err
			}
			tracks, err := exportableTracks(cmd, ctx)
			if err != nil {
				return err
			}

			path := tracksheet.ExportPath(target)
			if err := writeFile(path, func(f *os.File) error {
				return tracksheet.WriteStandard(f, tracks)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tracks to %s\n", len(tracks), path)
			return nil
		},
	}
}

func newExportPathsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export-paths <file>",
		Short: "Write every track's file path, name and artist to a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targetArg(args)
			if err != nil {
				return err
			}
			tracks, err := exportableTracks(cmd, ctx)
			if err != nil {
				return err
			}

			path := tracksheet.PathListPath(target)
			var written int
			if err := writeFile(path, func(f *os.File) error {
				var werr error
				written, werr = tracksheet.WritePathList(f, tracks)
				return werr
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d track paths to %s\n", written, path)
			return nil
		},
	}
}

func exportableTracks(cmd *cobra.Command, ctx *commandContext) ([]library.Track, error) {
	lib, logger, err := ctx.openLibrary()
	if err != nil {
		return nil, err
	}
	entries, err := lib.ListTracks(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	tracks := library.Tracks(entries)
	if skipped := len(entries) - len(tracks); skipped > 0 {
		logging.WarnWithContext(logger, "tracks left out of export", "unreadable_tracks",
			logging.Int("unreadable", skipped),
			logging.String(logging.FieldImpact, "tracks missing from export"),
		)
	}
	return tracks, nil
}

// writeFile creates path and its parent directory, runs write and closes the
// file, keeping the first error.
func writeFile(path string, write func(*os.File) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
