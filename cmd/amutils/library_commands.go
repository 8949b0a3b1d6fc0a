package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"amutils/internal/library"
	"amutils/internal/logging"
	"amutils/internal/pathkey"
	"amutils/internal/playtime"
)

func newStatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Show library size and total listened time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := libraryStats(cmd, ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "You have %d songs in your library\n", stats.Tracks)
			fmt.Fprintf(out, "You've listened for %s\n", playtime.Split(stats.Seconds))
			return nil
		},
	}
}

func newPlayedTimeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "playedtime",
		Short: "Show total listened time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := libraryStats(cmd, ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), playtime.Split(stats.Seconds))
			return nil
		},
	}
}

func libraryStats(cmd *cobra.Command, ctx *commandContext) (playtime.Stats, error) {
	lib, logger, err := ctx.openLibrary()
	if err != nil {
		return playtime.Stats{}, err
	}
	entries, err := lib.ListTracks(cmd.Context())
	if err != nil {
		return playtime.Stats{}, fmt.Errorf("list tracks: %w", err)
	}
	tracks := library.Tracks(entries)
	if skipped := len(entries) - len(tracks); skipped > 0 {
		logger.Warn("some tracks could not be read",
			logging.Int("unreadable", skipped),
			logging.String(logging.FieldEventType, "unreadable_tracks"),
		)
	}
	return playtime.Compute(tracks), nil
}

func newAddToPlaylistCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addtoplaylist <playlist>",
		Short: "Add every track stored as a .movpkg bundle to a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("playlist name is required")
			}
			lib, logger, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			return ctx.withWriterLock(func() error {
				entries, err := lib.ListTracks(cmd.Context())
				if err != nil {
					return fmt.Errorf("list tracks: %w", err)
				}
				var ids []string
				for _, track := range library.Tracks(entries) {
					if strings.Contains(track.FilePath, pathkey.BundleExt) {
						ids = append(ids, track.ID)
					}
				}
				if len(ids) == 0 {
					fmt.Fprintf(out, "No tracks with %s in their file path found in the library\n", pathkey.BundleExt)
					return nil
				}
				added, err := lib.AddTracksToPlaylist(cmd.Context(), name, ids)
				if err != nil {
					return fmt.Errorf("add to playlist %q: %w", name, err)
				}
				logger.Info("tracks added to playlist",
					logging.String("playlist", name),
					logging.Int("added", added),
					logging.Int("bundles", len(ids)),
				)
				fmt.Fprintf(out, "Added %d tracks to playlist '%s'\n", added, name)
				return nil
			})
		},
	}
}
