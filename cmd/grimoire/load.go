package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grimoire/internal/config"
	"grimoire/internal/pipeline"
	"grimoire/internal/store"
)

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Upsert the extracted output into the configured store",
		RunE:  runLoad,
	}
	return cmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}

	collection, err := pipeline.ReadCollections(cfg.Output)
	if err != nil {
		return err
	}

	inputs, err := store.Inputs(collection)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	upserted := 0
	var failures []error
	for _, in := range inputs {
		if err := db.UpsertRecord(ctx, in); err != nil {
			failures = append(failures, fmt.Errorf("upserting %s %q: %w", in.Kind, in.Name, err))
			continue
		}
		upserted++
	}

	fmt.Fprintln(os.Stdout, "Load complete.")
	fmt.Fprintf(os.Stdout, "  Records upserted: %d\n", upserted)

	if len(failures) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(failures))
		for _, item := range failures {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("load completed with errors")
	}
	return nil
}
