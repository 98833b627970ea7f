package room

import (
	"net/http"
	"staffdir/infras/otel"
	"staffdir/internal/domains/room/model"
	"staffdir/internal/domains/room/model/dto"
	"staffdir/internal/domains/room/service"
	"staffdir/shared/constant"
	"staffdir/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/meeting-rooms", handler.GetRooms)
	router.Get("/meeting-rooms/{room_id}", handler.GetRoomByID)
}

// GetRooms lists meeting rooms with their live status.
// @Summary List meeting rooms
// @Description List rooms in catalog order. Filters are exact matches and combine with AND; status is derived from the current time.
// @Tags Meeting Room
// @Produce json
// @Param location query string false "Filter by location"
// @Param floor query string false "Filter by floor"
// @Param status query string false "Filter by derived status" Enums(vacant, occupied)
// @Success 200 {array} dto.RoomResponse "List of rooms"
// @Failure 500 {object} response.Error
// @Router /meeting-rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	query := r.URL.Query()
	filter := model.Filter{
		Location: query.Get(constant.QueryParamLocation),
		Floor:    query.Get(constant.QueryParamFloor),
		Status:   query.Get(constant.QueryParamStatus),
	}

	var rooms []dto.RoomResponse

	rooms, err := handler.service.List(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list rooms")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("rooms.count", len(rooms))

	response.WithPayload(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves one meeting room.
// @Summary Get a meeting room
// @Description Retrieve a room with its bookings and live status.
// @Tags Meeting Room
// @Produce json
// @Param room_id path string true "Room ID"
// @Success 200 {object} dto.RoomResponse "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /meeting-rooms/{room_id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamRoomID)

	var room dto.RoomResponse

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithPayload(w, http.StatusOK, room)
}
