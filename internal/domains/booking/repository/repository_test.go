package repository_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	otelMocks "staffdir/infras/otel/mocks"
	"staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/booking/repository"
	roomMocks "staffdir/internal/domains/room/mocks"
	roomModel "staffdir/internal/domains/room/model"
	roomRepo "staffdir/internal/domains/room/repository"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 1, hour, minute, 0, 0, time.UTC)
}

func newStore(t *testing.T, roomIDs ...string) (repository.Booking, roomRepo.Room) {
	t.Helper()

	rooms := roomRepo.NewMemory(otelMocks.NewOtel())

	seed := make([]roomModel.Room, len(roomIDs))
	for i, id := range roomIDs {
		seed[i] = roomModel.Room{ID: id, Name: id}
	}

	_, err := rooms.Seed(context.Background(), seed)
	require.NoError(t, err)

	return repository.New(rooms, otelMocks.NewOtel()), rooms
}

func booking(id string, start, end time.Time) model.Booking {
	return model.Booking{ID: id, EmployeeID: "E001", EmployeeName: "Siti", StartTime: start, EndTime: end}
}

func TestAdd_AdjacentBookingsAccepted(t *testing.T) {
	store, _ := newStore(t, "R-1")
	ctx := context.Background()

	_, err := store.Add(ctx, "R-1", booking("a", at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = store.Add(ctx, "R-1", booking("b", at(11, 0), at(12, 0)))
	require.NoError(t, err)

	room, err := store.Add(ctx, "R-1", booking("c", at(12, 0), at(13, 0)))
	require.NoError(t, err)
	assert.Len(t, room.Bookings, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{room.Bookings[0].ID, room.Bookings[1].ID, room.Bookings[2].ID})

	_, err = store.Add(ctx, "R-1", booking("d", at(10, 30), at(11, 30)))
	require.ErrorIs(t, err, model.ErrTimeConflict)
	assert.Contains(t, err.Error(), "conflict")
}

func TestAdd_UnknownRoom(t *testing.T) {
	store, _ := newStore(t, "R-1")

	_, err := store.Add(context.Background(), "R-404", booking("a", at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestAdd_ConcurrentSameIntervalHasOneWinner(t *testing.T) {
	store, rooms := newStore(t, "R-1")
	ctx := context.Background()

	const contenders = 64

	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)

	for i := range contenders {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, err := store.Add(ctx, "R-1", booking(fmt.Sprintf("b%d", i), at(9, 0), at(10, 0)))

			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, model.ErrTimeConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	assert.EqualValues(t, 1, wins.Load())
	assert.EqualValues(t, contenders-1, conflicts.Load())

	room, err := rooms.Get(ctx, "R-1")
	require.NoError(t, err)
	assert.Len(t, room.Bookings, 1)
}

func TestAdd_NoOverlapAfterRandomSequence(t *testing.T) {
	store, rooms := newStore(t, "R-1", "R-2")
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	for i := range 500 {
		roomID := []string{"R-1", "R-2"}[rng.Intn(2)]
		start := at(0, 0).Add(time.Duration(rng.Intn(24*60)) * time.Minute)
		end := start.Add(time.Duration(1+rng.Intn(120)) * time.Minute)

		_, err := store.Add(ctx, roomID, booking(fmt.Sprintf("b%d", i), start, end))
		if err != nil {
			require.ErrorIs(t, err, model.ErrTimeConflict)
		}
	}

	all, err := rooms.GetAll(ctx, roomModel.Filter{})
	require.NoError(t, err)

	for _, room := range all {
		for i, a := range room.Bookings {
			for _, b := range room.Bookings[i+1:] {
				assert.False(t, a.Overlaps(b.StartTime, b.EndTime), "room %s: %s overlaps %s", room.ID, a.ID, b.ID)
			}
		}
	}
}

func TestRemove_SecondCallFails(t *testing.T) {
	store, _ := newStore(t, "R-1")
	ctx := context.Background()

	_, err := store.Add(ctx, "R-1", booking("a", at(10, 0), at(11, 0)))
	require.NoError(t, err)

	removed, err := store.Remove(ctx, "R-1", "a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)

	_, err = store.Remove(ctx, "R-1", "a")
	assert.ErrorIs(t, err, model.ErrBookingNotFound)

	_, err = store.Remove(ctx, "R-404", "a")
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestRemoveCurrent(t *testing.T) {
	store, rooms := newStore(t, "R-1")
	ctx := context.Background()

	_, err := store.Add(ctx, "R-1", booking("morning", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = store.Add(ctx, "R-1", booking("noon", at(12, 0), at(13, 0)))
	require.NoError(t, err)

	removed, err := store.RemoveCurrent(ctx, "R-1", at(11, 0))
	require.NoError(t, err)
	assert.Nil(t, removed)

	removed, err = store.RemoveCurrent(ctx, "R-1", at(9, 30))
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "morning", removed.ID)

	room, err := rooms.Get(ctx, "R-1")
	require.NoError(t, err)
	require.Len(t, room.Bookings, 1)
	assert.Equal(t, "noon", room.Bookings[0].ID)

	_, err = store.RemoveCurrent(ctx, "R-404", at(9, 30))
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestClearAll(t *testing.T) {
	store, rooms := newStore(t, "R-1", "R-2", "R-3")
	ctx := context.Background()

	_, err := store.Add(ctx, "R-1", booking("a", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = store.Add(ctx, "R-3", booking("b", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = store.Add(ctx, "R-3", booking("c", at(10, 0), at(11, 0)))
	require.NoError(t, err)

	cleared, err := store.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	all, err := rooms.GetAll(ctx, roomModel.Filter{})
	require.NoError(t, err)

	for _, room := range all {
		assert.Empty(t, room.Bookings)
	}

	cleared, err = store.ClearAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared)

	_, err = store.Add(ctx, "R-1", booking("fresh", at(9, 0), at(10, 0)))
	assert.NoError(t, err)
}

func TestClearAll_ContinuesPastFailingRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	store := repository.New(rooms, otelMocks.NewOtel())

	withBookings := func(_ context.Context, id string, fn roomRepo.Mutation) (roomModel.Room, error) {
		room := roomModel.Room{ID: id, Bookings: []model.Booking{booking("x", at(9, 0), at(10, 0))}}

		return room, fn(&room)
	}

	rooms.EXPECT().IDs(gomock.Any()).Return([]string{"R-1", "R-2", "R-3"}, nil)
	rooms.EXPECT().Update(gomock.Any(), "R-1", gomock.Any()).DoAndReturn(withBookings)
	rooms.EXPECT().Update(gomock.Any(), "R-2", gomock.Any()).Return(roomModel.Room{}, errors.New("connection reset"))
	rooms.EXPECT().Update(gomock.Any(), "R-3", gomock.Any()).DoAndReturn(withBookings)

	cleared, err := store.ClearAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)
}

func TestClearAll_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	store := repository.New(rooms, otelMocks.NewOtel())

	rooms.EXPECT().IDs(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := store.ClearAll(context.Background())
	assert.Error(t, err)
}
