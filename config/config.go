package config

import (
	"fmt"
	"net"
	"net/url"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// PostgresEndpoint addresses one side of the read/write connection pair.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

// DSN renders the endpoint as a lib/pq URL, prefixing the database name when a prefix is set.
func (e PostgresEndpoint) DSN(prefix string) string {
	query := url.Values{}

	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + prefix + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"staffdir"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		Seed struct {
			Enable bool   `envconfig:"ENABLE" default:"true"`
			File   string `envconfig:"FILE"`
		} `envconfig:"SEED"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Enable  bool `envconfig:"ENABLE"`
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"30"`
	} `envconfig:"CACHE"`

	DB struct {
		Driver   string `envconfig:"DRIVER" default:"memory"`
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
		Mongo struct {
			URI                   string `envconfig:"URI"`
			Database              string `envconfig:"DATABASE"                default:"staffdir"`
			ConnectTimeoutSeconds int    `envconfig:"CONNECT_TIMEOUT_SECONDS" default:"10"`
			MaxUpdateRetries      int    `envconfig:"MAX_UPDATE_RETRIES"      default:"5"`
		} `envconfig:"MONGO"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		Topic         string   `envconfig:"TOPIC"          default:"meeting-room.bookings"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"staffdir"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Str("driver", conf.DB.Driver).Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
