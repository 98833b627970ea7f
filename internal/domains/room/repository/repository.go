package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"staffdir/config"
	"staffdir/infras/mongo"
	"staffdir/infras/otel"
	"staffdir/infras/postgres"
	"staffdir/internal/domains/room/model"
)

// Mutation edits a room's bookings in place. Returning an error aborts the
// update and leaves the stored room untouched.
type Mutation func(room *model.Room) error

// Room is the store for rooms and the bookings they own. Update is the only
// write path for bookings and runs Mutation under per-room exclusion.
type Room interface {
	GetAll(ctx context.Context, filter model.Filter) ([]model.Room, error)
	Get(ctx context.Context, id string) (model.Room, error)
	IDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, fn Mutation) (model.Room, error)
	Seed(ctx context.Context, rooms []model.Room) (int, error)
}

// New picks the driver named by DB_DRIVER.
func New(cfg *config.Config, pg *postgres.Connection, mg *mongo.Connection, otel otel.Otel) Room {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return NewPostgres(pg, otel)
	case config.DriverMongo:
		return NewMongo(mg, cfg.DB.Mongo.MaxUpdateRetries, otel)
	default:
		return NewMemory(otel)
	}
}
