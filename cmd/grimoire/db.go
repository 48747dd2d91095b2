package main

import (
	"context"
	"fmt"

	"grimoire/internal/config"
	"grimoire/internal/store"
	"grimoire/internal/store/postgres"
	"grimoire/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return sqlite.New(ctx, cfg.Store.DSN)
	case "postgres":
		return postgres.New(ctx, cfg.Store.DSN)
	case "":
		return nil, fmt.Errorf("no store backend configured; set store.backend in %s", configPath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}
