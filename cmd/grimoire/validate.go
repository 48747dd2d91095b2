package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grimoire/internal/config"
	"grimoire/internal/pipeline"
	"grimoire/internal/validate"
)

var validateVerbose bool

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run schema and range checks over the extracted output",
		RunE:  runValidate,
	}
	cmd.Flags().BoolVar(&validateVerbose, "verbose", false, "Print every error and warning")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}

	collection, err := pipeline.ReadCollections(cfg.Output)
	if err != nil {
		return err
	}

	report := validate.Collection(collection)

	fmt.Fprintf(os.Stdout, "Validated %d records.\n", len(report.Results))
	fmt.Fprintf(os.Stdout, "  Invalid:  %d\n", report.Invalid)
	fmt.Fprintf(os.Stdout, "  Warnings: %d\n", report.Warnings)

	for _, result := range report.Results {
		if result.Valid() && len(result.Warnings) == 0 {
			continue
		}
		// Warnings-only records are shown with --verbose.
		if !validateVerbose && result.Valid() {
			continue
		}
		fmt.Fprintf(os.Stdout, "\n%s %q (%s) score=%d\n", result.RecordType, result.Name, result.Source, result.Score)
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stdout, "  error: %s\n", e)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stdout, "  warning: %s\n", w)
		}
	}

	if report.Invalid > 0 {
		return fmt.Errorf("%d records failed validation", report.Invalid)
	}
	return nil
}
