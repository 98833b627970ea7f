package main

import (
	"os"
	"staffdir/config"
	"staffdir/helper"
	"staffdir/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	switch os.Args[1] {
	case helper.ActionUp:
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	case helper.ActionDown:
		if err := helper.Down(cfg); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	case helper.ActionDrop:
		if err := helper.Drop(cfg); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	case helper.ActionStepUp:
		if err := helper.StepUp(cfg); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	default:
		log.Fatal().Str("direction", os.Args[1]).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
