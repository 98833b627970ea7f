package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"staffdir/infras/otel"
	"staffdir/internal/domains/booking/model"
	roomModel "staffdir/internal/domains/room/model"
	roomRepo "staffdir/internal/domains/room/repository"
	"staffdir/internal/domains/room/schedule"
	"staffdir/shared/constant"
	"staffdir/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// Booking owns every room's booking list. Each call is one atomic step on a
// single room, except ClearAll which walks rooms independently.
type Booking interface {
	Add(ctx context.Context, roomID string, booking model.Booking) (roomModel.Room, error)
	Remove(ctx context.Context, roomID, bookingID string) (model.Booking, error)
	RemoveCurrent(ctx context.Context, roomID string, at time.Time) (*model.Booking, error)
	ClearAll(ctx context.Context) (int, error)
}

type repositoryImpl struct {
	rooms roomRepo.Room
	otel  otel.Otel
}

func New(rooms roomRepo.Room, otel otel.Otel) Booking {
	return &repositoryImpl{
		rooms: rooms,
		otel:  otel,
	}
}

func (repo *repositoryImpl) Add(ctx context.Context, roomID string, booking model.Booking) (roomModel.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Add")
	defer scope.End()

	room, err := repo.rooms.Update(ctx, roomID, func(room *roomModel.Room) error {
		if clash, found := schedule.FindConflict(room.Bookings, booking.StartTime, booking.EndTime); found {
			return fmt.Errorf("%w: overlaps %s to %s", model.ErrTimeConflict,
				timezone.FormatInstant(clash.StartTime), timezone.FormatInstant(clash.EndTime))
		}

		room.Bookings = append(room.Bookings, booking)

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return room, err //nolint:wrapcheck
	}

	return room, nil
}

func (repo *repositoryImpl) Remove(ctx context.Context, roomID, bookingID string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Remove")
	defer scope.End()

	var removed model.Booking

	_, err := repo.rooms.Update(ctx, roomID, func(room *roomModel.Room) error {
		for i, booking := range room.Bookings {
			if booking.ID == bookingID {
				removed = booking
				room.Bookings = append(room.Bookings[:i], room.Bookings[i+1:]...)

				return nil
			}
		}

		return fmt.Errorf("%w: %s", model.ErrBookingNotFound, bookingID)
	})
	if err != nil {
		scope.TraceError(err)

		return removed, err //nolint:wrapcheck
	}

	return removed, nil
}

// RemoveCurrent finds the booking containing at and removes it by id within
// the same atomic step. Nothing active is a successful no-op.
func (repo *repositoryImpl) RemoveCurrent(ctx context.Context, roomID string, at time.Time) (*model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.RemoveCurrent")
	defer scope.End()

	var removed *model.Booking

	_, err := repo.rooms.Update(ctx, roomID, func(room *roomModel.Room) error {
		removed = nil

		active, found := schedule.FindActive(room.Bookings, at)
		if !found {
			return nil
		}

		kept := room.Bookings[:0]

		for _, booking := range room.Bookings {
			if booking.ID != active.ID {
				kept = append(kept, booking)
			}
		}

		room.Bookings = kept
		removed = &active

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return nil, err //nolint:wrapcheck
	}

	return removed, nil
}

// ClearAll empties every room. A room that fails is logged and skipped; the
// result counts only rooms that actually lost at least one booking.
func (repo *repositoryImpl) ClearAll(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ClearAll")
	defer scope.End()

	ids, err := repo.rooms.IDs(ctx)
	if err != nil {
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to list rooms: %w", err)
	}

	cleared := 0

	for _, id := range ids {
		removed := 0

		_, err := repo.rooms.Update(ctx, id, func(room *roomModel.Room) error {
			removed = len(room.Bookings)
			room.Bookings = []model.Booking{}

			return nil
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("room_id", id).Msg("failed to clear room bookings")

			continue
		}

		if removed > 0 {
			cleared++
		}
	}

	scope.SetAttribute("rooms.cleared", cleared)

	return cleared, nil
}
