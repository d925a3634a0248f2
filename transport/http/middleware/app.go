package middleware

import (
	"fmt"
	"net/http"

	"seatwise/config"
	"seatwise/infras/otel"
	systemRepo "seatwise/internal/domains/system/repository"
	"seatwise/shared/cache"
	"seatwise/shared/constant"

	"github.com/go-chi/chi/v5"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	Maintenance(http.Handler) http.Handler
}

type appMiddleware struct {
	otel       otel.Otel
	config     *config.Config
	cache      cache.RedisCache
	systemRepo systemRepo.System
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, systemRepo systemRepo.System) AppMiddleware {
	return &appMiddleware{
		otel:       otel,
		config:     config,
		cache:      cache,
		systemRepo: systemRepo,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		routePattern := constant.Empty
		if rctx := chi.RouteContext(ctx); rctx != nil {
			routePattern = rctx.RoutePattern()
		}

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.route":      routePattern,
			"http.method":     r.Method,
			"http.user_agent": a.getUA(r),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.status_code": rec.status,
		})
	})
}
