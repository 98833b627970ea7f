package mongo

import (
	"context"
	"staffdir/config"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New connects only when mongo is the configured driver; otherwise it returns nil.
func New(cfg *config.Config) *Connection {
	if cfg.DB.Driver != config.DriverMongo {
		return nil
	}

	timeout := time.Duration(cfg.DB.Mongo.ConnectTimeoutSeconds) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DB.Mongo.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping MongoDB")
	}

	log.Info().Str("database", cfg.DB.Mongo.Database).Msg("Connected to MongoDB")

	return &Connection{
		Client:   client,
		Database: client.Database(cfg.DB.Mongo.Database),
	}
}
