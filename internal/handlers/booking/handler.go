package booking

import (
	"net/http"
	"staffdir/infras/otel"
	"staffdir/internal/domains/booking/model/dto"
	"staffdir/internal/domains/booking/service"
	roomDto "staffdir/internal/domains/room/model/dto"
	"staffdir/shared/constant"
	"staffdir/shared/validator"
	"staffdir/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Delete("/meeting-rooms/clear-all-bookings", handler.ClearAllBookings)
	router.Post("/meeting-rooms/{room_id}/book", handler.BookRoom)
	router.Delete("/meeting-rooms/{room_id}/booking", handler.CancelCurrentBooking)
	router.Delete("/meeting-rooms/{room_id}/booking/{booking_id}", handler.CancelBooking)
}

// BookRoom books a room for an employee.
// @Summary Book a meeting room
// @Description Reserve [start_time, end_time) on a room. Timestamps are ISO-8601 and normalized to UTC. Overlapping an existing booking is rejected with a message containing "conflict"; touching intervals are allowed.
// @Tags Booking
// @Accept json
// @Produce json
// @Param room_id path string true "Room ID"
// @Param request body dto.BookRequest true "Booking details"
// @Success 200 {object} roomDto.RoomResponse "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /meeting-rooms/{room_id}/book [post]
func (handler *Handler) BookRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookRoom")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	var req dto.BookRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate booking request")

		response.WithError(w, err)

		return
	}

	var room roomDto.RoomResponse

	room, err := handler.service.Book(ctx, roomID, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room booked by employee " + req.EmployeeID)

	response.WithPayload(w, http.StatusOK, room)
}

// CancelBooking cancels one booking by id.
// @Summary Cancel a booking
// @Description Remove a specific booking. Cancelling the same booking twice fails the second time.
// @Tags Booking
// @Produce json
// @Param room_id path string true "Room ID"
// @Param booking_id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /meeting-rooms/{room_id}/booking/{booking_id} [delete]
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)
	bookingID := chi.URLParam(r, constant.RequestParamBookingID)

	msg, err := handler.service.Cancel(ctx, roomID, bookingID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, msg)
}

// CancelCurrentBooking cancels whichever booking is active right now.
// @Summary Cancel the current booking
// @Description Remove the booking whose interval contains the current time. Succeeds without change when the room is vacant.
// @Tags Booking
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} dto.CancelCurrentResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /meeting-rooms/{room_id}/booking [delete]
func (handler *Handler) CancelCurrentBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelCurrentBooking")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamRoomID)

	res, err := handler.service.CancelCurrent(ctx, roomID)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithPayload(w, http.StatusOK, res)
}

// ClearAllBookings empties every room.
// @Summary Clear all bookings
// @Description Remove every booking from every room. rooms_updated counts rooms that had at least one booking.
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.ClearAllResponse
// @Failure 500 {object} response.Error
// @Router /meeting-rooms/clear-all-bookings [delete]
func (handler *Handler) ClearAllBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearAllBookings")
	defer scope.End()

	res, err := handler.service.ClearAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear all bookings")

		response.WithError(w, err)

		return
	}

	response.WithPayload(w, http.StatusOK, res)
}
