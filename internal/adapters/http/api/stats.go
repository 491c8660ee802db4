package api

import (
	"net/http"

	"github.com/okian/hello-api/internal/domain/types"
	"github.com/okian/hello-api/pkg/logger"
)

// StatsProvider exposes runtime statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() types.Stats
}

// StatsHandler handles statistics requests.
type StatsHandler struct {
	statsProvider StatsProvider
	logger        logger.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, log logger.Logger) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider, logger: log}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if h.statsProvider == nil {
		_ = writeError(w, http.StatusServiceUnavailable, "stats_unavailable", nil)
		return
	}
	respond(w, r, h.logger, h.statsProvider.GetStats())
}
