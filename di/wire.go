//go:build wireinject
// +build wireinject

package di

import (
	"marigold/config"
	"marigold/infras/jwt"
	"marigold/infras/kafka"
	"marigold/infras/otel"
	"marigold/infras/postgres"
	"marigold/infras/redis"
	"marigold/infras/s3"
	"marigold/permissions"
	"marigold/shared/cache"
	"marigold/transport/http"
	"marigold/transport/http/middleware"
	"marigold/transport/http/router"

	bookingRepository "marigold/internal/domains/booking/repository"
	bookingService "marigold/internal/domains/booking/service"
	notificationRepository "marigold/internal/domains/notification/repository"
	notificationService "marigold/internal/domains/notification/service"
	roomRepository "marigold/internal/domains/room/repository"
	roomService "marigold/internal/domains/room/service"
	roomTypeRepository "marigold/internal/domains/roomtype/repository"
	roomTypeService "marigold/internal/domains/roomtype/service"

	"github.com/google/wire"

	authService "marigold/internal/domains/auth/service"
	authHandler "marigold/internal/handlers/auth"
	bookingHandler "marigold/internal/handlers/booking"
	notificationHandler "marigold/internal/handlers/notification"
	roomHandler "marigold/internal/handlers/room"
	roomTypeHandler "marigold/internal/handlers/roomtype"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomTypeDomain = wire.NewSet(
	roomTypeRepository.New,
	roomTypeService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	roomTypeDomain,
	roomDomain,
	bookingDomain,
	notificationDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomTypeHandler.New,
	roomHandler.New,
	bookingHandler.New,
	notificationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
