package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"staffdir/infras/metrics"
	"staffdir/infras/otel"
	"staffdir/internal/domains/booking/event"
	"staffdir/internal/domains/booking/model"
	"staffdir/internal/domains/booking/model/dto"
	"staffdir/internal/domains/booking/repository"
	employeeService "staffdir/internal/domains/employee/service"
	roomDto "staffdir/internal/domains/room/model/dto"
	roomRepo "staffdir/internal/domains/room/repository"
	roomService "staffdir/internal/domains/room/service"
	"staffdir/shared"
	"staffdir/shared/cache"
	"staffdir/shared/constant"
	"staffdir/shared/failure"
	"staffdir/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	messageCancelled        = "Booking cancelled successfully"
	messageCurrentCancelled = "Current booking cancelled successfully"
	messageNoActiveBooking  = "No active booking to cancel"
	messageCleared          = "All bookings cleared successfully"
)

type Booking interface {
	Book(ctx context.Context, roomID string, req dto.BookRequest) (roomDto.RoomResponse, error)
	Cancel(ctx context.Context, roomID, bookingID string) (string, error)
	CancelCurrent(ctx context.Context, roomID string) (dto.CancelCurrentResponse, error)
	ClearAll(ctx context.Context) (dto.ClearAllResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	employees employeeService.Employee
	events    event.Publisher
	cache     cache.RedisCache
	metrics   *metrics.Metrics
	otel      otel.Otel
	clock     timezone.Clock
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	employees employeeService.Employee,
	events event.Publisher,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
	clock timezone.Clock,
) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		employees: employees,
		events:    events,
		cache:     cache,
		metrics:   metrics,
		otel:      otel,
		clock:     clock,
	}
}

// Book validates the interval against now, resolves room and employee, then
// lets the store check for conflicts and commit in one atomic step.
func (s *serviceImpl) Book(ctx context.Context, roomID string, req dto.BookRequest) (res roomDto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Book")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)
		s.metrics.BookingAttempts.WithLabelValues(outcome(err)).Inc()
	}()

	now := s.clock()

	start, end, err := req.Interval()
	if err != nil {
		return res, err
	}

	if !start.Before(end) {
		return res, model.ErrInvalidInterval
	}

	if start.Before(now) {
		return res, model.ErrPastStart
	}

	if _, err = s.roomRepo.Get(ctx, roomID); err != nil {
		return res, err //nolint:wrapcheck
	}

	employee, err := s.employees.Lookup(ctx, req.EmployeeID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	booking := req.ToModel(employee.Name, start, end, now)

	room, err := s.repo.Add(ctx, roomID, booking)
	if err != nil {
		if errors.Is(err, model.ErrTimeConflict) {
			log.Info().Str("room_id", roomID).Str("employee_id", booking.EmployeeID).Msg("booking rejected: time conflict")
		} else {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to add booking")
		}

		return res, err //nolint:wrapcheck
	}

	s.invalidate(ctx, roomID)

	s.events.Publish(ctx, event.BookingEvent{
		Type:       event.TypeBooked,
		RoomID:     roomID,
		BookingID:  booking.ID,
		EmployeeID: booking.EmployeeID,
		StartTime:  timezone.FormatInstant(booking.StartTime),
		EndTime:    timezone.FormatInstant(booking.EndTime),
		OccurredAt: now,
	})

	res.FromModel(room, now)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, roomID, bookingID string) (msg string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	removed, err := s.repo.Remove(ctx, roomID, bookingID)
	if err != nil {
		log.Warn().Err(err).Str("room_id", roomID).Str("booking_id", bookingID).Msg("failed to cancel booking")

		return msg, err //nolint:wrapcheck
	}

	s.metrics.BookingsCancelled.WithLabelValues(metrics.CancelSpecific).Inc()
	s.invalidate(ctx, roomID)

	s.events.Publish(ctx, event.BookingEvent{
		Type:       event.TypeCancelled,
		RoomID:     roomID,
		BookingID:  removed.ID,
		EmployeeID: removed.EmployeeID,
		OccurredAt: s.clock(),
	})

	return messageCancelled, nil
}

func (s *serviceImpl) CancelCurrent(ctx context.Context, roomID string) (res dto.CancelCurrentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CancelCurrent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock()

	removed, err := s.repo.RemoveCurrent(ctx, roomID, now)
	if err != nil {
		log.Warn().Err(err).Str("room_id", roomID).Msg("failed to cancel current booking")

		return res, err //nolint:wrapcheck
	}

	if removed == nil {
		res.Message = messageNoActiveBooking

		return res, nil
	}

	s.metrics.BookingsCancelled.WithLabelValues(metrics.CancelCurrent).Inc()
	s.invalidate(ctx, roomID)

	s.events.Publish(ctx, event.BookingEvent{
		Type:       event.TypeCurrentCancelled,
		RoomID:     roomID,
		BookingID:  removed.ID,
		EmployeeID: removed.EmployeeID,
		OccurredAt: now,
	})

	res.Message = messageCurrentCancelled
	res.BookingID = &removed.ID

	return res, nil
}

func (s *serviceImpl) ClearAll(ctx context.Context) (res dto.ClearAllResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ClearAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cleared, err := s.repo.ClearAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to clear bookings")

		return res, fmt.Errorf("failed to clear bookings: %w", err)
	}

	s.metrics.BookingsCancelled.WithLabelValues(metrics.CancelClearAll).Inc()
	s.metrics.RoomsCleared.Add(float64(cleared))
	s.invalidate(ctx, constant.Empty)

	s.events.Publish(ctx, event.BookingEvent{
		Type:         event.TypeCleared,
		RoomsUpdated: cleared,
		OccurredAt:   s.clock(),
	})

	log.Info().Int("rooms_updated", cleared).Msg("cleared all bookings")

	res.Message = messageCleared
	res.RoomsUpdated = cleared

	return res, nil
}

// invalidate drops the cached reads of roomID and every listing. An empty
// roomID drops all room reads.
func (s *serviceImpl) invalidate(ctx context.Context, roomID string) {
	if roomID == constant.Empty {
		shared.InvalidateCaches(ctx, s.cache, roomService.CachePrefix)

		return
	}

	if err := s.cache.Delete(ctx, roomService.RoomCacheKey(roomID)); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to invalidate room cache")
	}

	shared.InvalidateCaches(ctx, s.cache, roomService.ListCachePrefix)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCommitted
	case errors.Is(err, model.ErrTimeConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, model.ErrRoomNotFound), errors.Is(err, model.ErrEmployeeNotFound):
		return metrics.OutcomeNotFound
	case failure.IsClientError(err):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
