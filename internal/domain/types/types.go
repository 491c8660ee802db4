// Package types contains the response records written by the HTTP API.
// Field order is the JSON key order on the wire.
package types

// Response status values.
const (
	StatusSuccess = "success"
	StatusUp      = "UP"
)

// MessageResponse is returned by GET /api/hello and GET /api/hello/{name}.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GreetingResponse is returned by POST /api/greet.
type GreetingResponse struct {
	Greeting string `json:"greeting"`
	Status   string `json:"status"`
}

// HealthResponse is returned by GET /api/health.
// Timestamp is wall-clock time in Unix milliseconds.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Service   string `json:"service"`
}

// InfoResponse is returned by GET /api/info.
type InfoResponse struct {
	App         string `json:"app"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Stats is the operational snapshot served on GET /stats.
type Stats struct {
	Started      bool   `json:"started"`
	StartedAt    int64  `json:"started_at"`
	UptimeMS     int64  `json:"uptime_ms"`
	ProductCount int    `json:"product_count"`
	Version      string `json:"version"`
}
