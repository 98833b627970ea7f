package main

import (
	"context"
	"staffdir/config"
	"staffdir/di"
	"staffdir/helper"
	"staffdir/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title						staffdir meeting-room booking API
// @version					1.0
// @description				Meeting-room catalog and booking service of the employee directory.
// @BasePath					/
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Driver == config.DriverPostgres && cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	app := di.InitializeService()

	if cfg.App.Seed.Enable {
		if err := app.Seeder.Seed(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed catalog")
		}
	}

	app.HTTP.Serve()
}
