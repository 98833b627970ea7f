package main

import (
	"context"
	"os"
	"os/signal"
	"staffdir/config"
	"staffdir/infras/kafka"
	"staffdir/internal/domains/booking/event"
	"staffdir/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Tails the booking event topic and logs every event.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled, set KAFKA_ENABLE=true to tail booking events")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)

	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	log.Info().Str("topic", cfg.Kafka.Topic).Str("group", cfg.Kafka.ConsumerGroup).Msg("Tailing booking events")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, event.LogMessage)
}
