package api

import (
	"net/http"

	"github.com/okian/hello-api/pkg/logger"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies, log logger.Logger) *HealthHandler {
	return &HealthHandler{deps: deps, logger: log}
}

// HandleHealth handles GET /api/health. The timestamp is taken per request.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, r, h.logger, h.deps.Health(r.Context()))
}
