package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"amutils/internal/config"
	"amutils/internal/replace"
)

func newReplaceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "replace [file-or-folder]",
		Short: "Replace library tracks with new .m4a files, keeping play counts and playlists",
		Long: "Reads the title, artist and album tags of each .m4a file (one file, or every\n" +
			"file in a folder; the current directory by default), deletes the matching\n" +
			"library track, adds the new file and restores the old play count, favourite\n" +
			"flag and playlist membership. Files without a matching track are just added.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := targetArg(args)
			if err != nil {
				return err
			}
			lib, logger, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			con := newConsole(out)

			var results []replace.Result
			err = ctx.withWriterLock(func() error {
				var runErr error
				results, runErr = replace.New(lib, logger).Run(cmd.Context(), target)
				return runErr
			})
			for _, r := range results {
				kind, detail := replaceOutcome(r)
				con.report(filepath.Base(r.Song.Path), kind, detail)
			}
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintf(out, "No %s files found in %s\n", replace.AudioExt, target)
				return nil
			}

			var replaced, added, failed int
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
				case r.Replaced():
					replaced++
				default:
					added++
				}
			}
			con.summarize("",
				count("Files", len(results)),
				count("Replaced", replaced),
				count("Added", added),
				count("Failed", failed),
			)
			if failed > 0 {
				return fmt.Errorf("%d of %d files were not fully replaced", failed, len(results))
			}
			return nil
		},
	}
}

func replaceOutcome(r replace.Result) (outcome, string) {
	switch {
	case r.Err != nil:
		return outcomeFailed, r.Err.Error()
	case r.Replaced():
		return outcomeDone, fmt.Sprintf("replaced %q (%d playlists)", r.Song.Title, r.Playlists)
	default:
		return outcomeNote, fmt.Sprintf("added %q", r.Song.Title)
	}
}

// targetArg returns the expanded first argument, or the working directory.
func targetArg(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return wd, nil
	}
	path, err := config.ExpandPath(args[0])
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return path, nil
}
