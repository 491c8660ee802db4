// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/hello-api/internal/domain/model"
	"github.com/okian/hello-api/internal/domain/types"
	"github.com/okian/hello-api/pkg/logger"
)

const (
	contentTypeJSON     = "application/json"
	defaultMaxBodyBytes = 1 << 20
	corsMaxAgeSeconds   = 300
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Hello(ctx context.Context) types.MessageResponse
	HelloName(ctx context.Context, name string) types.MessageResponse
	Greet(ctx context.Context, name *string) types.GreetingResponse
	Health(ctx context.Context) types.HealthResponse
	Info(ctx context.Context) types.InfoResponse
	Products(ctx context.Context) ([]model.Product, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	helloHandler    *HelloHandler
	greetHandler    *GreetHandler
	healthHandler   *HealthHandler
	infoHandler     *InfoHandler
	productsHandler *ProductsHandler
	statsHandler    *StatsHandler

	logger          logger.Logger
	allowedOrigins  []string
	metricsEndpoint bool
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	logger          logger.Logger
	maxBodyBytes    int64
	allowedOrigins  []string
	metricsEndpoint bool
}

// WithLogger sets the logger used by handlers and the access log.
func WithLogger(l logger.Logger) ServerOption {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxBodyBytes caps request bodies read by handlers.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithAllowedOrigins sets the CORS origin allow-list.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(o *serverOptions) {
		if len(origins) > 0 {
			o.allowedOrigins = origins
		}
	}
}

// WithMetricsEndpoint toggles GET /metrics.
func WithMetricsEndpoint(enabled bool) ServerOption {
	return func(o *serverOptions) {
		o.metricsEndpoint = enabled
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	o := serverOptions{
		maxBodyBytes:    defaultMaxBodyBytes,
		allowedOrigins:  []string{"*"},
		metricsEndpoint: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get()
	}
	log := o.logger.Named("api")

	return &Server{
		helloHandler:    NewHelloHandler(deps, log),
		greetHandler:    NewGreetHandler(deps, log, o.maxBodyBytes),
		healthHandler:   NewHealthHandler(deps, log),
		infoHandler:     NewInfoHandler(deps, log),
		productsHandler: NewProductsHandler(deps, log),
		statsHandler:    NewStatsHandler(statsProvider, log),
		logger:          log,
		allowedOrigins:  o.allowedOrigins,
		metricsEndpoint: o.metricsEndpoint,
	}
}

// Routes builds a router with middleware and every route attached.
// Callers may mount further routes on the result.
func (s *Server) Routes(ctx context.Context) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.GetHead)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           corsMaxAgeSeconds,
	}))

	s.Register(ctx, r)
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(ctx context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/hello", MetricsMiddleware(s.helloHandler.HandleHello, "hello"))
		r.Get("/hello/{name}", MetricsMiddleware(s.helloHandler.HandleHelloName, "hello_name"))
		r.Post("/greet", MetricsMiddleware(s.greetHandler.HandleGreet, "greet"))
		r.Get("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
		r.Get("/info", MetricsMiddleware(s.infoHandler.HandleInfo, "info"))
		r.Get("/products", MetricsMiddleware(s.productsHandler.HandleProducts, "products"))
	})

	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	if s.metricsEndpoint {
		r.Get("/metrics", MetricsHandler().ServeHTTP)
	}

	// A known path with another method is still an unknown route.
	notFound := MetricsMiddleware(handleNotFound, "not_found")
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	s.logger.Debug(ctx, "api routes registered")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = writeError(w, http.StatusNotFound, "not_found", nil)
}

// writeJSON encodes v before touching the response so an encode failure can
// still become a 500. HTML escaping is off and the encoder's trailing newline
// is dropped, so bodies are exactly the JSON document.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

func writeError(w http.ResponseWriter, status int, code string, err error) error {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	return writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
