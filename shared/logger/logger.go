package logger

import (
	"io"
	"os"
	"staffdir/config"
	"staffdir/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	if err == nil {
		return
	}

	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL. Production switches to JSON lines
// tagged with the app name so the collector can index them.
func SetLogLevel(config *config.Config) {
	if config.Server.Env == constant.ServerEnvProduction {
		UseJSON(os.Stdout, config.App.Name)
	}

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

func UseJSON(out io.Writer, service string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", service).Logger()
}
