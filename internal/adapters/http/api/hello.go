package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/okian/hello-api/pkg/logger"
)

// HelloHandler serves the hello routes.
type HelloHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewHelloHandler creates a new hello handler.
func NewHelloHandler(deps Dependencies, log logger.Logger) *HelloHandler {
	return &HelloHandler{deps: deps, logger: log}
}

// HandleHello handles GET /api/hello.
func (h *HelloHandler) HandleHello(w http.ResponseWriter, r *http.Request) {
	respond(w, r, h.logger, h.deps.Hello(r.Context()))
}

// HandleHelloName handles GET /api/hello/{name}.
func (h *HelloHandler) HandleHelloName(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if name == "" {
		handleNotFound(w, r)
		return
	}
	respond(w, r, h.logger, h.deps.HelloName(r.Context(), name))
}

// pathParam returns the decoded value of a chi URL parameter. chi matches
// against RawPath when the request carries escaped characters, so the value
// is unescaped only in that case.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// respond writes a 200 JSON body and logs encode or write failures.
func respond(w http.ResponseWriter, r *http.Request, log logger.Logger, v any) {
	if err := writeJSON(w, http.StatusOK, v); err != nil {
		log.Error(r.Context(), "failed to write response",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
}
