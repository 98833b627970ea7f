package service_test

import (
	"context"
	"errors"
	"staffdir/config"
	otelMocks "staffdir/infras/otel/mocks"
	bookingModel "staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/room/mocks"
	"staffdir/internal/domains/room/model"
	"staffdir/internal/domains/room/service"
	"staffdir/shared/cache"
	cacheMocks "staffdir/shared/cache/mocks"
	"staffdir/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func rooms() []model.Room {
	return []model.Room{
		{
			ID: "R-101", Name: "Borobudur", Location: "HQ", Floor: "1",
			Bookings: []bookingModel.Booking{{
				ID:        "b1",
				StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			}},
		},
		{ID: "R-201", Name: "Prambanan", Location: "HQ", Floor: "2"},
	}
}

func newService(t *testing.T) (service.Room, *mocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRoom(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)
	cfg := &config.Config{}
	cfg.Cache.TTL = 30

	return service.New(repo, cfg, redis, otelMocks.NewOtel(), timezone.Fixed(now)), repo, redis
}

func TestList_DerivesStatusAndFilters(t *testing.T) {
	svc, repo, redis := newService(t)

	redis.EXPECT().Get(gomock.Any(), "room:gets:HQ:", gomock.Any()).Return(cache.Nil).Times(3)
	redis.EXPECT().Save(gomock.Any(), "room:gets:HQ:", gomock.Any(), 30).Return(nil).Times(3)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(rooms(), nil).Times(3)

	all, err := svc.List(context.Background(), model.Filter{Location: "HQ"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, model.StatusOccupied, all[0].Status)
	require.NotNil(t, all[0].CurrentBooking)
	assert.Equal(t, "b1", all[0].CurrentBooking.ID)
	assert.Equal(t, "2025-03-01T09:00:00Z", all[0].CurrentBooking.StartTime)
	assert.Equal(t, model.StatusVacant, all[1].Status)
	assert.Nil(t, all[1].CurrentBooking)
	assert.NotNil(t, all[1].Bookings)

	occupied, err := svc.List(context.Background(), model.Filter{Location: "HQ", Status: model.StatusOccupied})
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, "R-101", occupied[0].ID)

	unknown, err := svc.List(context.Background(), model.Filter{Location: "HQ", Status: "busy"})
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestList_CacheHitStillDerivesStatus(t *testing.T) {
	svc, _, redis := newService(t)

	redis.EXPECT().Get(gomock.Any(), "room:gets::", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*(value.(*[]model.Room)) = rooms()

			return nil
		})

	res, err := svc.List(context.Background(), model.Filter{})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, model.StatusOccupied, res[0].Status)
}

func TestList_StorageFault(t *testing.T) {
	svc, repo, redis := newService(t)
	fault := errors.New("connection refused")

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(nil, fault)

	_, err := svc.List(context.Background(), model.Filter{})
	assert.ErrorIs(t, err, fault)
}

func TestGet(t *testing.T) {
	svc, repo, redis := newService(t)

	redis.EXPECT().Get(gomock.Any(), "room:get:R-101", gomock.Any()).Return(cache.Nil)
	redis.EXPECT().Save(gomock.Any(), "room:get:R-101", gomock.Any(), 30).Return(errors.New("redis down"))
	repo.EXPECT().Get(gomock.Any(), "R-101").Return(rooms()[0], nil)

	res, err := svc.Get(context.Background(), "R-101")
	require.NoError(t, err)
	assert.Equal(t, "Borobudur", res.Name)
	assert.Equal(t, model.StatusOccupied, res.Status)
}

func TestGet_NotFound(t *testing.T) {
	svc, repo, redis := newService(t)

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	repo.EXPECT().Get(gomock.Any(), "missing").Return(model.Room{}, bookingModel.ErrRoomNotFound)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, bookingModel.ErrRoomNotFound)
}
