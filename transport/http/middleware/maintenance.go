package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"seatwise/internal/domains/system/model"
	"seatwise/shared"
	"seatwise/transport/http/response"
)

const (
	cacheKeySystem      = "system"
	cacheKeyMaintenance = "maintenance"
)

// Maintenance blocks requests while maintenance mode is enabled.
// Auth and system endpoints stay reachable so an admin can switch it back off.
func (a *appMiddleware) Maintenance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/auth") || strings.HasPrefix(r.URL.Path, "/v1/system") || strings.HasPrefix(r.URL.Path, "/health") {
			next.ServeHTTP(w, r)

			return
		}

		cacheKey := shared.BuildCacheKey(cacheKeySystem, cacheKeyMaintenance)

		var enabled bool
		if err := a.cache.Get(r.Context(), cacheKey, &enabled); err != nil {
			// Cache miss, likely a redis flush or restart. The settings row
			// is still authoritative, so read it back and re-prime the key.
			settings, repoErr := a.systemRepo.Get(r.Context(), shared.FilterByID(model.SingletonID, model.FieldID, model.TableName))
			if repoErr != nil {
				log.Error().Err(repoErr).Msg("failed to read maintenance flag, gate stays open")

				next.ServeHTTP(w, r)

				return
			}

			enabled = settings.MaintenanceMode

			if err := a.cache.Save(r.Context(), cacheKey, enabled, 0); err != nil {
				log.Error().Err(err).Msg("failed to re-prime maintenance flag in cache")
			}
		}

		if enabled {
			response.WithMaintenanceMode(w)

			return
		}

		next.ServeHTTP(w, r)
	})
}
