package api

import (
	"net/http"

	"github.com/okian/hello-api/pkg/logger"
)

// InfoHandler serves application metadata.
type InfoHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(deps Dependencies, log logger.Logger) *InfoHandler {
	return &InfoHandler{deps: deps, logger: log}
}

// HandleInfo handles GET /api/info.
func (h *InfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	respond(w, r, h.logger, h.deps.Info(r.Context()))
}
