package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grimoire/internal/config"
	"grimoire/internal/record"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-kind record counts from the store",
		RunE:  runStats,
	}
	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configPath)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	counts, err := db.CountByKind(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, kind := range record.Kinds {
		fmt.Fprintf(os.Stdout, "  %-10s %d\n", string(kind)+":", counts[kind])
		total += counts[kind]
	}
	fmt.Fprintf(os.Stdout, "  %-10s %d\n", "total:", total)
	return nil
}
