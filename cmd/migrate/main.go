package main

import (
	"context"

	"backoffice/api/internal/config"
	"backoffice/api/internal/database"
	"backoffice/api/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	if err := database.Migrate(context.Background(), cfg.Postgres, logger); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
}
