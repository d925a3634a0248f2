//go:build wireinject
// +build wireinject

package di

import (
	"seatwise/config"
	"seatwise/infras/jwt"
	"seatwise/infras/kafka"
	"seatwise/infras/otel"
	"seatwise/infras/postgres"
	"seatwise/infras/redis"
	"seatwise/infras/s3"
	"seatwise/permissions"
	"seatwise/shared/cache"
	"seatwise/transport/http"
	"seatwise/transport/http/middleware"
	"seatwise/transport/http/router"

	"github.com/google/wire"

	attendanceRepository "seatwise/internal/domains/attendance/repository"
	attendanceService "seatwise/internal/domains/attendance/service"
	authService "seatwise/internal/domains/auth/service"
	bookingRepository "seatwise/internal/domains/booking/repository"
	bookingService "seatwise/internal/domains/booking/service"
	financialRepository "seatwise/internal/domains/financial/repository"
	financialService "seatwise/internal/domains/financial/service"
	operationRepository "seatwise/internal/domains/operation/repository"
	operationService "seatwise/internal/domains/operation/service"
	reportRepository "seatwise/internal/domains/report/repository"
	reportService "seatwise/internal/domains/report/service"
	seatRepository "seatwise/internal/domains/seat/repository"
	seatService "seatwise/internal/domains/seat/service"
	studentRepository "seatwise/internal/domains/student/repository"
	studentService "seatwise/internal/domains/student/service"
	systemRepository "seatwise/internal/domains/system/repository"
	systemService "seatwise/internal/domains/system/service"
	userRepository "seatwise/internal/domains/user/repository"

	attendanceHandler "seatwise/internal/handlers/attendance"
	authHandler "seatwise/internal/handlers/auth"
	bookingHandler "seatwise/internal/handlers/booking"
	financialHandler "seatwise/internal/handlers/financial"
	operationHandler "seatwise/internal/handlers/operation"
	reportHandler "seatwise/internal/handlers/report"
	seatHandler "seatwise/internal/handlers/seat"
	studentHandler "seatwise/internal/handlers/student"
	systemHandler "seatwise/internal/handlers/system"
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
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var studentDomain = wire.NewSet(
	studentRepository.New,
	studentService.New,
)

var seatDomain = wire.NewSet(
	seatRepository.New,
	seatService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var attendanceDomain = wire.NewSet(
	attendanceRepository.New,
	attendanceService.New,
)

var financialDomain = wire.NewSet(
	financialRepository.New,
	financialService.New,
)

var operationDomain = wire.NewSet(
	operationRepository.New,
	operationService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var systemDomain = wire.NewSet(
	systemRepository.New,
	systemService.New,
)

var domains = wire.NewSet(
	authDomain,
	studentDomain,
	seatDomain,
	bookingDomain,
	attendanceDomain,
	financialDomain,
	operationDomain,
	reportDomain,
	systemDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	studentHandler.New,
	seatHandler.New,
	bookingHandler.New,
	attendanceHandler.New,
	financialHandler.New,
	operationHandler.New,
	reportHandler.New,
	systemHandler.New,
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
