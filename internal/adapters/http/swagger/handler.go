// Package swagger serves the API reference: a ReDoc page and the OpenAPI document.
package swagger

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/hello-api/pkg/logger"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
)

// RedocScriptURL is the ReDoc bundle loaded by the docs page.
const RedocScriptURL = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

// Register attaches the docs routes to r. Write failures are logged to log
// when it is not nil.
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> embedded OpenAPI document
func Register(_ context.Context, r chi.Router, log logger.Logger) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/api-docs", serve(log, "text/html; charset=utf-8", []byte(indexHTML)))
	r.Get("/openapi.yaml", serve(log, "application/yaml; charset=utf-8", OpenAPI))
}

func serve(log logger.Logger, contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := write(w, contentType, body); err != nil && log != nil {
			log.Warn(r.Context(), "docs response write failed",
				logger.String("path", r.URL.Path),
				logger.Error(err),
			)
		}
	}
}

func write(w http.ResponseWriter, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	return nil
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Hello API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + RedocScriptURL + `"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
