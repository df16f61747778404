package segtrie

import "context"

// Params maps parameter names to the raw segment values captured on
// the matched path.
type Params map[string]string

// Get returns the value bound to name, or the first default if the
// parameter was not captured.
func (p Params) Get(name string, defaultValue ...string) string {
	if v, ok := p[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// Has reports whether name was captured.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Clone returns a copy that does not share storage with p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

type contextKey int

const (
	contextKeyParams contextKey = iota
	contextKeyPattern
	contextKeyRemainder
)

func WithParams(ctx context.Context, params Params) context.Context {
	return context.WithValue(ctx, contextKeyParams, params)
}

func ParamsFromContext(ctx context.Context) (Params, bool) {
	params, ok := ctx.Value(contextKeyParams).(Params)
	return params, ok
}

// WithMatch stores the params, pattern and wildcard remainder of m.
func WithMatch(ctx context.Context, m Match) context.Context {
	ctx = WithParams(ctx, m.Params)
	ctx = context.WithValue(ctx, contextKeyPattern, m.Pattern)
	if m.Wildcard {
		ctx = context.WithValue(ctx, contextKeyRemainder, m.Remainder)
	}
	return ctx
}

func PatternFromContext(ctx context.Context) (string, bool) {
	pattern, ok := ctx.Value(contextKeyPattern).(string)
	return pattern, ok
}

// RemainderFromContext returns the unconsumed path of a wildcard match.
func RemainderFromContext(ctx context.Context) (string, bool) {
	rest, ok := ctx.Value(contextKeyRemainder).(string)
	return rest, ok
}
