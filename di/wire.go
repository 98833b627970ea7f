//go:build wireinject
// +build wireinject

package di

import (
	"staffdir/config"
	"staffdir/infras/kafka"
	"staffdir/infras/metrics"
	"staffdir/infras/mongo"
	"staffdir/infras/otel"
	"staffdir/infras/postgres"
	"staffdir/infras/redis"
	"staffdir/seed"
	"staffdir/shared/cache"
	"staffdir/shared/timezone"
	"staffdir/transport/http"
	"staffdir/transport/http/middleware"
	"staffdir/transport/http/router"

	bookingEvent "staffdir/internal/domains/booking/event"
	bookingRepository "staffdir/internal/domains/booking/repository"
	bookingService "staffdir/internal/domains/booking/service"
	employeeRepository "staffdir/internal/domains/employee/repository"
	employeeService "staffdir/internal/domains/employee/service"
	roomRepository "staffdir/internal/domains/room/repository"
	roomService "staffdir/internal/domains/room/service"
	bookingHandler "staffdir/internal/handlers/booking"
	employeeHandler "staffdir/internal/handlers/employee"
	roomHandler "staffdir/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	mongo.New,
	otel.New,
	redis.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var employeeDomain = wire.NewSet(
	employeeRepository.New,
	employeeService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingEvent.New,
	bookingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	employeeDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	employeeHandler.New,
	router.New,
)

func InitializeService() *Application {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		seed.New,
		http.New,
		wire.Struct(new(Application), "*"),
	)

	return &Application{}
}
