package main

import (
	"github.com/rs/zerolog"

	"fitbuddy/backend/internal/config"
	"fitbuddy/backend/internal/db"
	"fitbuddy/backend/internal/logging"
)

func main() {
	var logger zerolog.Logger

	cfg, err := config.Load()
	if err != nil {
		logger, _ = logging.Setup(logging.SetupParams{Level: "error"})
		logger.Fatal().Err(err).Msg("load config")
	}
	logger, _ = logging.Setup(logging.SetupParams{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	applied, err := db.RunMigrations(database, db.MigrationsFS(cfg.MigrationsDir))
	if err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	logger.Info().Strs("applied", applied).Msg("migrations applied successfully")
}
