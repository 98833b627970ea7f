package router

import (
	"staffdir/internal/handlers/booking"
	"staffdir/internal/handlers/employee"
	"staffdir/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room     room.Handler
	Booking  booking.Handler
	Employee employee.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Room.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Employee.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
