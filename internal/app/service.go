// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	repository "github.com/okian/hello-api/internal/adapters/repository"
	"github.com/okian/hello-api/internal/domain/greeting"
	"github.com/okian/hello-api/internal/domain/model"
	"github.com/okian/hello-api/internal/domain/types"
	"github.com/okian/hello-api/pkg/logger"
	"github.com/okian/hello-api/pkg/metrics"
)

// Greeting kinds used as metric labels.
const (
	kindHello     = "hello"
	kindHelloName = "hello_name"
	kindGreet     = "greet"
)

// Service implements the API dependencies. Request-path methods only read
// immutable fields, so they are safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	catalog repository.Store
	now     func() time.Time

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCatalog replaces the compiled-in product catalog.
func WithCatalog(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.catalog = store
		}
	}
}

// WithClock overrides the wall clock used for health timestamps and uptime.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		now:    time.Now,
		logger: nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.catalog == nil {
		s.catalog = repository.MustDefaultCatalog()
	}

	return s
}

// Start marks the service as running and publishes build info.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	metrics.SetBuildInfo(greeting.AppVersion)

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "hello service started",
		logger.String("version", greeting.AppVersion),
		logger.Int("products", s.catalog.Count(ctx)),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "hello service stopped")
}

// Hello returns the static hello message.
func (s *Service) Hello(_ context.Context) types.MessageResponse {
	metrics.RecordGreeting(kindHello)
	return types.MessageResponse{Message: greeting.Hello(), Status: types.StatusSuccess}
}

// HelloName returns the hello message for name.
func (s *Service) HelloName(_ context.Context, name string) types.MessageResponse {
	metrics.RecordGreeting(kindHelloName)
	return types.MessageResponse{Message: greeting.HelloName(name), Status: types.StatusSuccess}
}

// Greet returns the greeting for name, or for the default name when nil.
func (s *Service) Greet(_ context.Context, name *string) types.GreetingResponse {
	metrics.RecordGreeting(kindGreet)
	return types.GreetingResponse{
		Greeting: greeting.Greet(greeting.NameOrDefault(name)),
		Status:   types.StatusSuccess,
	}
}

// Health reports UP with the current time in Unix milliseconds.
func (s *Service) Health(_ context.Context) types.HealthResponse {
	return types.HealthResponse{
		Status:    types.StatusUp,
		Timestamp: s.now().UnixMilli(),
		Service:   greeting.ServiceName,
	}
}

// Info returns the static application description.
func (s *Service) Info(_ context.Context) types.InfoResponse {
	return types.InfoResponse{
		App:         greeting.AppName,
		Version:     greeting.AppVersion,
		Description: greeting.AppDescription,
	}
}

// Products returns the catalog in order.
func (s *Service) Products(ctx context.Context) ([]model.Product, error) {
	products, err := s.catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordProductsServed(len(products))
	return products, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.Stats{
		Started:      s.started,
		ProductCount: s.catalog.Count(context.Background()),
		Version:      greeting.AppVersion,
	}
	if s.started {
		stats.StartedAt = s.startedAt.UnixMilli()
		stats.UptimeMS = s.now().Sub(s.startedAt).Milliseconds()
	}
	return stats
}
