package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const healthTimeout = 2 * time.Second

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	cache     *cache.Cache
	started   time.Time
}

func newHealthHandler(db database.Database, c *cache.Cache) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		cache:     c,
		started:   time.Now(),
	}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Uptime   string `json:"uptime"`
}

// healthz reports whether the database and cache answer
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (h healthHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok", Database: "ok", Cache: "disabled", Uptime: time.Since(h.started).Round(time.Second).String()}
		status := http.StatusOK

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("Database ping failed")
			resp.Database = "unreachable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		if h.cache.Enabled() {
			resp.Cache = "ok"
			// the site still serves without redis
			if err := h.cache.Ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("Cache ping failed")
				resp.Cache = "unreachable"
				resp.Status = "degraded"
			}
		}

		h.responder.WriteStatus(w, status, resp)
	}
}
