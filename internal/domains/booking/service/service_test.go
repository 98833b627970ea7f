package service_test

import (
	"context"
	"errors"
	"net/http"
	"staffdir/infras/metrics"
	otelMocks "staffdir/infras/otel/mocks"
	"staffdir/internal/domains/booking/event"
	"staffdir/internal/domains/booking/mocks"
	"staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/booking/model/dto"
	"staffdir/internal/domains/booking/service"
	employeeMocks "staffdir/internal/domains/employee/mocks"
	employeeDto "staffdir/internal/domains/employee/model/dto"
	roomMocks "staffdir/internal/domains/room/mocks"
	roomModel "staffdir/internal/domains/room/model"
	"staffdir/shared/cache"
	cacheMocks "staffdir/shared/cache/mocks"
	"staffdir/shared/failure"
	"staffdir/shared/timezone"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc       service.Booking
	store     *mocks.MockBooking
	rooms     *roomMocks.MockRoom
	employees *employeeMocks.MockEmployeeService
	events    *mocks.MockPublisher
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		store:     mocks.NewMockBooking(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		employees: employeeMocks.NewMockEmployeeService(ctrl),
		events:    mocks.NewMockPublisher(ctrl),
		metrics:   metrics.New(),
	}

	f.svc = service.New(f.store, f.rooms, f.employees, f.events, cache.NewNoop(), f.metrics, otelMocks.NewOtel(), timezone.Fixed(now))

	return f
}

func request(start, end string) dto.BookRequest {
	return dto.BookRequest{EmployeeID: "E001", StartTime: start, EndTime: end, Remarks: "standup"}
}

func TestBook_Commits(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Get(gomock.Any(), "R-101").Return(roomModel.Room{ID: "R-101"}, nil)
	f.employees.EXPECT().Lookup(gomock.Any(), "E001").Return(employeeDto.EmployeeResponse{ID: "E001", Name: "Siti Rahma"}, nil)
	f.store.EXPECT().Add(gomock.Any(), "R-101", gomock.Any()).
		DoAndReturn(func(_ context.Context, roomID string, booking model.Booking) (roomModel.Room, error) {
			assert.NotEmpty(t, booking.ID)
			assert.Equal(t, "Siti Rahma", booking.EmployeeName)
			assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), booking.StartTime)
			assert.Equal(t, now, booking.CreatedAt)

			return roomModel.Room{ID: roomID, Name: "Borobudur", Bookings: []model.Booking{booking}}, nil
		})
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, evt event.BookingEvent) {
			assert.Equal(t, event.TypeBooked, evt.Type)
			assert.Equal(t, "R-101", evt.RoomID)
		})

	res, err := f.svc.Book(context.Background(), "R-101", request("2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "R-101", res.ID)
	assert.Equal(t, roomModel.StatusVacant, res.Status)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "2025-03-01T09:00:00Z", res.Bookings[0].StartTime)
	assert.Equal(t, "Siti Rahma", res.Bookings[0].EmployeeName)

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.BookingAttempts.WithLabelValues(metrics.OutcomeCommitted)), 0)
}

func TestBook_RejectsBeforeTouchingStore(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.BookRequest
		wantErr error
		code    int
	}{
		{
			name:    "end before start",
			req:     request("2025-03-01T10:00:00Z", "2025-03-01T09:00:00Z"),
			wantErr: model.ErrInvalidInterval,
			code:    http.StatusBadRequest,
		},
		{
			name:    "empty interval",
			req:     request("2025-03-01T10:00:00Z", "2025-03-01T10:00:00Z"),
			wantErr: model.ErrInvalidInterval,
			code:    http.StatusBadRequest,
		},
		{
			name:    "start in the past",
			req:     request("2025-03-01T07:59:00Z", "2025-03-01T09:00:00Z"),
			wantErr: model.ErrPastStart,
			code:    http.StatusBadRequest,
		},
		{
			name: "malformed start",
			req:  request("yesterday", "2025-03-01T09:00:00Z"),
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Book(context.Background(), "R-101", tt.req)
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.Equal(t, tt.code, failure.GetCode(err))
			assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.BookingAttempts.WithLabelValues(metrics.OutcomeInvalid)), 0)
		})
	}
}

func TestBook_StartingNowIsAllowed(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Get(gomock.Any(), "R-101").Return(roomModel.Room{ID: "R-101"}, nil)
	f.employees.EXPECT().Lookup(gomock.Any(), "E001").Return(employeeDto.EmployeeResponse{ID: "E001", Name: "Siti"}, nil)
	f.store.EXPECT().Add(gomock.Any(), "R-101", gomock.Any()).
		DoAndReturn(func(_ context.Context, roomID string, booking model.Booking) (roomModel.Room, error) {
			return roomModel.Room{ID: roomID, Bookings: []model.Booking{booking}}, nil
		})
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any())

	res, err := f.svc.Book(context.Background(), "R-101", request("2025-03-01T08:00:00Z", "2025-03-01T08:30:00Z"))
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusOccupied, res.Status)
	require.NotNil(t, res.CurrentBooking)
}

func TestBook_UnknownRoom(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Get(gomock.Any(), "R-404").Return(roomModel.Room{}, model.ErrRoomNotFound)

	_, err := f.svc.Book(context.Background(), "R-404", request("2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z"))
	require.ErrorIs(t, err, model.ErrRoomNotFound)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.BookingAttempts.WithLabelValues(metrics.OutcomeNotFound)), 0)
}

func TestBook_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Get(gomock.Any(), "R-101").Return(roomModel.Room{ID: "R-101"}, nil)
	f.employees.EXPECT().Lookup(gomock.Any(), "E001").Return(employeeDto.EmployeeResponse{}, model.ErrEmployeeNotFound)

	_, err := f.svc.Book(context.Background(), "R-101", request("2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z"))
	require.ErrorIs(t, err, model.ErrEmployeeNotFound)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBook_Conflict(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Get(gomock.Any(), "R-101").Return(roomModel.Room{ID: "R-101"}, nil)
	f.employees.EXPECT().Lookup(gomock.Any(), "E001").Return(employeeDto.EmployeeResponse{ID: "E001", Name: "Siti"}, nil)
	f.store.EXPECT().Add(gomock.Any(), "R-101", gomock.Any()).Return(roomModel.Room{}, model.ErrTimeConflict)

	_, err := f.svc.Book(context.Background(), "R-101", request("2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z"))
	require.ErrorIs(t, err, model.ErrTimeConflict)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "conflict")
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.BookingAttempts.WithLabelValues(metrics.OutcomeConflict)), 0)
}

func TestBook_StorageFaultIsServerError(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Get(gomock.Any(), "R-101").Return(roomModel.Room{}, errors.New("connection refused"))

	_, err := f.svc.Book(context.Background(), "R-101", request("2025-03-01T09:00:00Z", "2025-03-01T10:00:00Z"))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.BookingAttempts.WithLabelValues(metrics.OutcomeError)), 0)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().Remove(gomock.Any(), "R-101", "b1").Return(model.Booking{ID: "b1", EmployeeID: "E001"}, nil)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any())

	msg, err := f.svc.Cancel(context.Background(), "R-101", "b1")
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	f.store.EXPECT().Remove(gomock.Any(), "R-101", "b1").Return(model.Booking{}, model.ErrBookingNotFound)

	_, err = f.svc.Cancel(context.Background(), "R-101", "b1")
	require.ErrorIs(t, err, model.ErrBookingNotFound)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCancelCurrent(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().RemoveCurrent(gomock.Any(), "R-101", now).Return(&model.Booking{ID: "b1"}, nil)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any())

	res, err := f.svc.CancelCurrent(context.Background(), "R-101")
	require.NoError(t, err)
	require.NotNil(t, res.BookingID)
	assert.Equal(t, "b1", *res.BookingID)
}

func TestCancelCurrent_NothingActive(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().RemoveCurrent(gomock.Any(), "R-101", now).Return(nil, nil)

	res, err := f.svc.CancelCurrent(context.Background(), "R-101")
	require.NoError(t, err)
	assert.Nil(t, res.BookingID)
	assert.NotEmpty(t, res.Message)
}

func TestCancelCurrent_UnknownRoom(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().RemoveCurrent(gomock.Any(), "R-404", now).Return(nil, model.ErrRoomNotFound)

	_, err := f.svc.CancelCurrent(context.Background(), "R-404")
	assert.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestClearAll(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().ClearAll(gomock.Any()).Return(3, nil)
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, evt event.BookingEvent) {
			assert.Equal(t, event.TypeCleared, evt.Type)
			assert.Equal(t, 3, evt.RoomsUpdated)
		})

	res, err := f.svc.ClearAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.RoomsUpdated)
	assert.NotEmpty(t, res.Message)
	assert.InDelta(t, 3, testutil.ToFloat64(f.metrics.RoomsCleared), 0)
}

func TestCancel_InvalidatesRoomAndListings(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockBooking(ctrl)
	events := mocks.NewMockPublisher(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(store, roomMocks.NewMockRoom(ctrl), employeeMocks.NewMockEmployeeService(ctrl), events, redis, metrics.New(), otelMocks.NewOtel(), timezone.Fixed(now))

	store.EXPECT().Remove(gomock.Any(), "R-101", "b1").Return(model.Booking{ID: "b1"}, nil)
	events.EXPECT().Publish(gomock.Any(), gomock.Any())
	redis.EXPECT().Delete(gomock.Any(), "room:get:R-101").Return(nil)
	redis.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)

	_, err := svc.Cancel(context.Background(), "R-101", "b1")
	require.NoError(t, err)
}
