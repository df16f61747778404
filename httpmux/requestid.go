package httpmux

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID is the default request id header.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// RequestIDConfig controls request id propagation.
type RequestIDConfig struct {
	// Header is read from the request and echoed on the response.
	Header string
	// Generator creates an id when the request has none.
	Generator func() string
}

var RequestIDConfigDefault = RequestIDConfig{
	Header:    HeaderRequestID,
	Generator: uuid.NewString,
}

// WithRequestID makes the mux reuse or generate a request id for every
// dispatch. The id is set on the response, the span and the request
// context.
func WithRequestID(config ...RequestIDConfig) Option {
	cfg := requestIDConfigDefault(config...)
	return func(m *Mux) {
		m.requestID = &cfg
	}
}

func requestIDConfigDefault(config ...RequestIDConfig) RequestIDConfig {
	if len(config) == 0 {
		return RequestIDConfigDefault
	}

	cfg := config[0]

	if cfg.Header == "" {
		cfg.Header = RequestIDConfigDefault.Header
	}

	if cfg.Generator == nil {
		cfg.Generator = RequestIDConfigDefault.Generator
	}

	return cfg
}

func (c *RequestIDConfig) apply(w http.ResponseWriter, r *http.Request) string {
	rid := r.Header.Get(c.Header)
	if rid == "" {
		rid = c.Generator()
	}
	w.Header().Set(c.Header, rid)
	return rid
}

// RequestIDFromContext returns the id assigned by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	rid, ok := ctx.Value(requestIDKey{}).(string)
	return rid, ok
}
