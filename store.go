package main

import (
	"context"
	"fmt"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/config"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/repository/postgres"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/repository/sqlite"
)

// openStore connects to the backend selected by DATABASE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (domain.Database, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	default:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	}
}
