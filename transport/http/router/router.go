package router

import (
	"seatwise/internal/handlers/attendance"
	"seatwise/internal/handlers/auth"
	"seatwise/internal/handlers/booking"
	"seatwise/internal/handlers/financial"
	"seatwise/internal/handlers/operation"
	"seatwise/internal/handlers/report"
	"seatwise/internal/handlers/seat"
	"seatwise/internal/handlers/student"
	"seatwise/internal/handlers/system"
	"seatwise/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth       auth.Handler
	Student    student.Handler
	Seat       seat.Handler
	Booking    booking.Handler
	Attendance attendance.Handler
	Financial  financial.Handler
	Operation  operation.Handler
	Report     report.Handler
	System     system.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Student.Router(routerGroup)
		r.DomainHandlers.Seat.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Attendance.Router(routerGroup)
		r.DomainHandlers.Financial.Router(routerGroup)
		r.DomainHandlers.Operation.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.System.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
