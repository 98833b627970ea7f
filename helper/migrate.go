package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"staffdir/config"
	"staffdir/migrations"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

func connectionString(config *config.Config) string {
	descriptor := config.DB.Postgres.Write.DSN(config.DB.Postgres.Prefix)

	if config.DB.Postgres.MigrationTable != "" {
		sep := "?"
		if strings.Contains(descriptor, "?") {
			sep = "&"
		}

		descriptor += sep + "x-migrations-table=" + config.DB.Postgres.MigrationTable
	}

	return descriptor
}

// getConnection reads the migrations embedded in the binary, so cmd/migrate
// and AUTO_MIGRATE work regardless of the working directory.
func getConnection(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error reading embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("unknown migration action %q", action)
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
