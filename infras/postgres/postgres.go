package postgres

//nolint:revive
import (
	"staffdir/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New connects only when postgres is the configured driver; otherwise it returns nil.
func New(cfg *config.Config) *Connection {
	if cfg.DB.Driver != config.DriverPostgres {
		return nil
	}

	pg := cfg.DB.Postgres
	retry := retryPolicy{attempts: max(pg.MaxRetry, 1), wait: time.Duration(pg.RetryWaitTime) * time.Second}

	return &Connection{
		Read:  connect("read", pg.Read, pg.Prefix, retry),
		Write: connect("write", pg.Write, pg.Prefix, retry),
	}
}

type retryPolicy struct {
	attempts int
	wait     time.Duration
}

func connect(name string, endpoint config.PostgresEndpoint, prefix string, retry retryPolicy) *sqlx.DB {
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", prefix+endpoint.Name).
		Logger()

	for attempt := 1; attempt <= retry.attempts; attempt++ {
		db, err := sqlx.Connect("postgres", endpoint.DSN(prefix))
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(retry.wait)
	}

	logger.Fatal().Msg("Giving up connecting to database")

	return nil
}
