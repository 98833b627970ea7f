package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"staffdir/config"
	employeeModel "staffdir/internal/domains/employee/model"
	employeeRepo "staffdir/internal/domains/employee/repository"
	roomModel "staffdir/internal/domains/room/model"
	roomRepo "staffdir/internal/domains/room/repository"

	"github.com/rs/zerolog/log"
)

//go:embed data/seed.json
var defaultCatalog []byte

type Catalog struct {
	Rooms     []roomModel.Room         `json:"rooms"`
	Employees []employeeModel.Employee `json:"employees"`
}

type Seeder struct {
	config    *config.Config
	rooms     roomRepo.Room
	employees employeeRepo.Employee
}

func New(cfg *config.Config, rooms roomRepo.Room, employees employeeRepo.Employee) *Seeder {
	return &Seeder{
		config:    cfg,
		rooms:     rooms,
		employees: employees,
	}
}

// Load reads the catalog from APP_SEED_FILE, or the embedded default when unset.
func (s *Seeder) Load() (Catalog, error) {
	raw := defaultCatalog

	if path := s.config.App.Seed.File; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to read seed file %s: %w", path, err)
		}

		raw = data
	}

	return Parse(raw)
}

func Parse(raw []byte) (Catalog, error) {
	var catalog Catalog

	if err := json.Unmarshal(raw, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to decode seed catalog: %w", err)
	}

	for i, room := range catalog.Rooms {
		if room.ID == "" {
			return Catalog{}, fmt.Errorf("seed room at index %d has no id", i)
		}

		if room.Equipment == nil {
			catalog.Rooms[i].Equipment = []string{}
		}

		catalog.Rooms[i].Bookings = nil
	}

	for i, employee := range catalog.Employees {
		if employee.ID == "" {
			return Catalog{}, fmt.Errorf("seed employee at index %d has no id", i)
		}
	}

	return catalog, nil
}

// Seed provisions rooms and employees that are not stored yet. Existing
// records, and the bookings they hold, are left alone.
func (s *Seeder) Seed(ctx context.Context) error {
	catalog, err := s.Load()
	if err != nil {
		return err
	}

	employees, err := s.employees.Seed(ctx, catalog.Employees)
	if err != nil {
		return fmt.Errorf("failed to seed employees: %w", err)
	}

	rooms, err := s.rooms.Seed(ctx, catalog.Rooms)
	if err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}

	log.Info().
		Int("rooms", rooms).
		Int("employees", employees).
		Msg("Seed catalog applied")

	return nil
}
