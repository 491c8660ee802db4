package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/hello-api/pkg/logger"
)

// GreetHandler serves POST /api/greet.
type GreetHandler struct {
	deps         Dependencies
	logger       logger.Logger
	maxBodyBytes int64
}

// NewGreetHandler creates a new greet handler.
func NewGreetHandler(deps Dependencies, log logger.Logger, maxBodyBytes int64) *GreetHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &GreetHandler{deps: deps, logger: log, maxBodyBytes: maxBodyBytes}
}

// HandleGreet reads an optional {"name": ...} body. Anything that does not
// yield a string name greets the default name.
func (h *GreetHandler) HandleGreet(w http.ResponseWriter, r *http.Request) {
	name, err := decodeGreetName(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", nil)
			return
		}
		h.logger.Debug(r.Context(), "greet body ignored", logger.Error(err))
	}
	respond(w, r, h.logger, h.deps.Greet(r.Context(), name))
}

// decodeGreetName returns the name member of a JSON object body, or nil
// when the body is empty, not an object, or carries a non-string name.
func decodeGreetName(body io.Reader) (*string, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	v, ok := fields["name"]
	if !ok {
		return nil, nil
	}
	var name *string
	if err := json.Unmarshal(v, &name); err != nil {
		return nil, fmt.Errorf("%w: name: %v", ErrBadRequest, err)
	}
	return name, nil
}
