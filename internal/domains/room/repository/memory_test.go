package repository_test

import (
	"context"
	"errors"
	"staffdir/infras/otel/mocks"
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/model"
	"staffdir/internal/domains/room/repository"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) repository.Room {
	t.Helper()

	repo := repository.NewMemory(mocks.NewOtel())

	inserted, err := repo.Seed(context.Background(), []model.Room{
		{ID: "R-101", Name: "Borobudur", Location: "HQ", Floor: "1", Capacity: 8, Equipment: []string{"tv"}},
		{ID: "R-201", Name: "Prambanan", Location: "HQ", Floor: "2", Capacity: 4},
		{ID: "R-301", Name: "Komodo", Location: "Annex", Floor: "1", Capacity: 12},
	})
	require.NoError(t, err)
	require.Equal(t, 3, inserted)

	return repo
}

func TestMemory_SeedIsInsertIfAbsent(t *testing.T) {
	repo := seeded(t)

	inserted, err := repo.Seed(context.Background(), []model.Room{
		{ID: "R-101", Name: "Renamed"},
		{ID: "R-401", Name: "Toba"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	room, err := repo.Get(context.Background(), "R-101")
	require.NoError(t, err)
	assert.Equal(t, "Borobudur", room.Name)

	ids, err := repo.IDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"R-101", "R-201", "R-301", "R-401"}, ids)
}

func TestMemory_GetAllFilters(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()

	all, err := repo.GetAll(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "R-101", all[0].ID)

	hq, err := repo.GetAll(ctx, model.Filter{Location: "HQ"})
	require.NoError(t, err)
	assert.Len(t, hq, 2)

	firstFloorHQ, err := repo.GetAll(ctx, model.Filter{Location: "HQ", Floor: "1"})
	require.NoError(t, err)
	require.Len(t, firstFloorHQ, 1)
	assert.Equal(t, "R-101", firstFloorHQ[0].ID)

	none, err := repo.GetAll(ctx, model.Filter{Location: "Nowhere"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemory_GetUnknownRoom(t *testing.T) {
	repo := seeded(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, bookingModel.ErrRoomNotFound)

	_, err = repo.Update(context.Background(), "missing", func(*model.Room) error { return nil })
	assert.ErrorIs(t, err, bookingModel.ErrRoomNotFound)
}

func TestMemory_UpdateAbortsOnError(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repo.Update(ctx, "R-101", func(room *model.Room) error {
		room.Bookings = append(room.Bookings, bookingModel.Booking{ID: "b1"})

		return boom
	})
	require.ErrorIs(t, err, boom)

	room, err := repo.Get(ctx, "R-101")
	require.NoError(t, err)
	assert.Empty(t, room.Bookings)
}

func TestMemory_ReturnedRoomsAreCopies(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()

	room, err := repo.Get(ctx, "R-101")
	require.NoError(t, err)

	room.Equipment[0] = "mutated"
	room.Bookings = append(room.Bookings, bookingModel.Booking{ID: "ghost"})

	again, err := repo.Get(ctx, "R-101")
	require.NoError(t, err)
	assert.Equal(t, []string{"tv"}, again.Equipment)
	assert.Empty(t, again.Bookings)
}

func TestMemory_UpdateSerializesPerRoom(t *testing.T) {
	repo := seeded(t)
	ctx := context.Background()

	const writers = 50

	var wg sync.WaitGroup

	for i := range writers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := repo.Update(ctx, "R-201", func(room *model.Room) error {
				start := time.Date(2025, 3, 1, 0, i, 0, 0, time.UTC)
				room.Bookings = append(room.Bookings, bookingModel.Booking{ID: start.String(), StartTime: start, EndTime: start.Add(time.Minute)})

				return nil
			})
			assert.NoError(t, err)
		}(i)
	}

	wg.Wait()

	room, err := repo.Get(ctx, "R-201")
	require.NoError(t, err)
	assert.Len(t, room.Bookings, writers)
}
