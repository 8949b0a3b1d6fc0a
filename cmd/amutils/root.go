package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool

	return buildRootCommand(newCommandContext(&configFlag, &verboseFlag), &configFlag, &verboseFlag)
}

func buildRootCommand(ctx *commandContext, configFlag *string, verboseFlag *bool) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "amutils",
		Short:         "Apple Music library utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newStatCommand(ctx))
	rootCmd.AddCommand(newPlayedTimeCommand(ctx))
	rootCmd.AddCommand(newReplaceCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newExportPathsCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newAddToPlaylistCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
