package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"amutils/internal/importer"
	"amutils/internal/logging"
	"amutils/internal/tracksheet"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Apply play counts, favourites and tags from a CSV file",
		Long: "Accepts the standard export layout (matched by track id) or the matched\n" +
			"layout with a \"File Directory\" column (matched by file path, file name\n" +
			"and duration). Rows that cannot be matched are reported with the closest\n" +
			"library title.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := targetArg(args)
			if err != nil {
				return err
			}
			sheet, err := tracksheet.ReadFile(path, cfg.Import.Encodings)
			if err != nil {
				return err
			}
			lib, logger, err := ctx.openLibrary()
			if err != nil {
				return err
			}

			dry := dryRun || cfg.Import.DryRun
			opts := []importer.Option{
				importer.WithDurationTolerance(cfg.Import.DurationTolerance),
				importer.WithDryRun(dry),
			}
			if cfg.History.Enabled && !noHistory {
				store, err := ctx.openHistory()
				if err != nil {
					logging.WarnWithContext(logger, "import history unavailable", "history_open_failed",
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "check history.path or run with --no-history"),
						logging.String(logging.FieldImpact, "run will not be recorded"),
					)
				} else {
					defer store.Close()
					opts = append(opts, importer.WithRecorder(store))
				}
			}
			pipeline := importer.New(lib, logger, opts...)

			var report importer.Report
			run := func() error {
				var runErr error
				report, runErr = pipeline.Run(cmd.Context(), sheet)
				return runErr
			}
			if dry {
				err = run()
			} else {
				err = ctx.withWriterLock(run)
			}
			if report.RunID != "" {
				printImportReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve rows and report without writing to the library")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the import history")
	return cmd
}

func printImportReport(out io.Writer, report importer.Report) {
	con := newConsole(out)
	for _, o := range report.Failures() {
		detail := o.Err.Error()
		if o.Hint != "" {
			detail += fmt.Sprintf(" (closest: %q)", o.Hint)
		}
		con.report(fmt.Sprintf("row %d", o.Line), outcomeFailed, detail)
	}

	heading := "Import summary"
	if report.DryRun {
		heading += " (dry run)"
	}
	s := report.Summary
	con.summarize(heading,
		fact{"Run", report.RunID},
		fact{"Source", report.Source},
		fact{"Format", string(report.Format)},
		fact{"Encoding", report.Encoding},
		count("Rows", s.Rows),
		count("Updated by id", s.UpdatedByID),
		count("Updated by path", s.UpdatedByPath),
		count("Updated by filename", s.UpdatedByFilename),
		count("Updated by duration", s.UpdatedByDuration),
		count("Failed", s.Failed),
		count("Skipped", s.Skipped),
		count("Unreadable tracks", s.UnreadableTracks),
	)
}
