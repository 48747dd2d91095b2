package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grimoire/internal/config"
	"grimoire/internal/pipeline"
	"grimoire/internal/record"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract typed records from the configured rulebook files",
		RunE:  runExtract,
	}
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	summary, err := pipeline.Run(ctx, pipeline.Options{
		Roots:       cfg.Inputs,
		Exclude:     cfg.Exclude,
		OutDir:      cfg.Output,
		Workers:     cfg.Batch.Workers,
		FileTimeout: cfg.Batch.FileTimeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Extraction complete.")
	fmt.Fprintf(os.Stdout, "  Files processed:      %d\n", summary.FilesProcessed)
	fmt.Fprintf(os.Stdout, "  Files skipped:        %d\n", summary.FilesSkipped)
	fmt.Fprintf(os.Stdout, "  Files failed:         %d\n", summary.FilesFailed)
	fmt.Fprintf(os.Stdout, "  Candidates rejected:  %d\n", summary.CandidatesRejected)
	fmt.Fprintf(os.Stdout, "  Duplicates dropped:   %d\n", summary.DuplicatesDropped)
	fmt.Fprintln(os.Stdout, "\nRecords:")
	for _, kind := range record.Kinds {
		fmt.Fprintf(os.Stdout, "  %-10s %d\n", string(kind)+":", summary.RecordCounts[kind])
	}
	if summary.InvalidRecords > 0 || summary.ValidationWarnings > 0 {
		fmt.Fprintf(os.Stdout, "\nValidation: %d invalid, %d warnings (run `grimoire validate` for details)\n",
			summary.InvalidRecords, summary.ValidationWarnings)
	}
	return nil
}
