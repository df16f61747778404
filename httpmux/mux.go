// Package httpmux serves net/http requests from segment trees, one per
// method.
package httpmux

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	segtrie "github.com/goliatone/go-segtrie"
)

const tracerName = "github.com/goliatone/go-segtrie/httpmux"

// AnyMethod registers a handler for every method not registered
// explicitly.
const AnyMethod = "*"

const (
	resultMatched          = "matched"
	resultNotFound         = "not_found"
	resultMethodNotAllowed = "method_not_allowed"
)

// Mux dispatches requests by method and path. Handlers may be
// registered while the mux is serving.
type Mux struct {
	mu    sync.RWMutex
	trees map[string]*segtrie.SyncTree

	treeOpts         []segtrie.Option
	notFound         http.Handler
	methodNotAllowed http.Handler
	tracer           trace.Tracer
	metrics          *Metrics
	requestID        *RequestIDConfig
	logger           segtrie.Logger
}

type Option func(*Mux)

// WithTreeOptions sets the options used for every per-method tree.
func WithTreeOptions(opts ...segtrie.Option) Option {
	return func(m *Mux) {
		m.treeOpts = append(m.treeOpts, opts...)
	}
}

func WithNotFound(h http.Handler) Option {
	return func(m *Mux) {
		if h != nil {
			m.notFound = h
		}
	}
}

// WithMethodNotAllowed replaces the 405 handler. The Allow header is
// set before it runs.
func WithMethodNotAllowed(h http.Handler) Option {
	return func(m *Mux) {
		if h != nil {
			m.methodNotAllowed = h
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Mux) {
		if tp != nil {
			m.tracer = tp.Tracer(tracerName)
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Mux) {
		m.metrics = metrics
	}
}

func WithLogger(logger segtrie.Logger) Option {
	return func(m *Mux) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func New(opts ...Option) *Mux {
	m := &Mux{
		trees:  make(map[string]*segtrie.SyncTree),
		tracer: otel.GetTracerProvider().Tracer(tracerName),
		logger: segtrie.NewZapLogger(nil),
		notFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		}),
		methodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Handle registers h for method and pattern. A nil handler removes the
// route. Use AnyMethod to match every method.
func (m *Mux) Handle(method, pattern string, h http.Handler) {
	method = strings.ToUpper(method)
	m.logger.Debug("handle %s %s", method, pattern)

	var value any
	if !isNilHandler(h) {
		value = h
	}
	m.tree(method, true).Add(pattern, value)
}

func (m *Mux) HandleFunc(method, pattern string, fn http.HandlerFunc) {
	m.Handle(method, pattern, fn)
}

func (m *Mux) Get(pattern string, h http.HandlerFunc) {
	m.Handle(http.MethodGet, pattern, h)
}

func (m *Mux) Post(pattern string, h http.HandlerFunc) {
	m.Handle(http.MethodPost, pattern, h)
}

func (m *Mux) Put(pattern string, h http.HandlerFunc) {
	m.Handle(http.MethodPut, pattern, h)
}

func (m *Mux) Patch(pattern string, h http.HandlerFunc) {
	m.Handle(http.MethodPatch, pattern, h)
}

func (m *Mux) Delete(pattern string, h http.HandlerFunc) {
	m.Handle(http.MethodDelete, pattern, h)
}

func (m *Mux) Any(pattern string, h http.HandlerFunc) {
	m.Handle(AnyMethod, pattern, h)
}

// Routes returns the registered routes keyed by method.
func (m *Mux) Routes() map[string][]segtrie.Route {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]segtrie.Route, len(m.trees))
	for method, tree := range m.trees {
		out[method] = tree.Routes()
	}
	return out
}

func (m *Mux) tree(method string, create bool) *segtrie.SyncTree {
	m.mu.RLock()
	tree, ok := m.trees[method]
	m.mu.RUnlock()
	if ok || !create {
		return tree
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if tree, ok = m.trees[method]; ok {
		return tree
	}
	tree = segtrie.NewSyncTree(segtrie.New(nil, m.treeOpts...))
	m.trees[method] = tree
	return tree
}

func (m *Mux) lookup(method, path string) (segtrie.Match, bool) {
	candidates := []string{method}
	if method == http.MethodHead {
		candidates = append(candidates, http.MethodGet)
	}
	candidates = append(candidates, AnyMethod)

	for _, c := range candidates {
		tree := m.tree(c, false)
		if tree == nil {
			continue
		}
		if match, ok := tree.Get(path); ok {
			return match, true
		}
	}
	return segtrie.Match{}, false
}

// allowed lists the methods that would match path.
func (m *Mux) allowed(path string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var methods []string
	for method, tree := range m.trees {
		if method == AnyMethod {
			continue
		}
		if _, ok := tree.Get(path); ok {
			methods = append(methods, method)
		}
	}
	sort.Strings(methods)
	return methods
}

func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := r.URL.EscapedPath()

	ctx, span := m.tracer.Start(r.Context(), "segtrie.dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	if m.requestID != nil {
		rid := m.requestID.apply(w, r)
		span.SetAttributes(attribute.String("segtrie.request_id", rid))
		ctx = context.WithValue(ctx, requestIDKey{}, rid)
	}

	result := resultMatched
	defer func() {
		span.SetAttributes(attribute.String("segtrie.result", result))
		m.metrics.observe(r.Method, result, time.Since(start))
	}()

	match, ok := m.lookup(r.Method, path)
	if !ok {
		if methods := m.allowed(path); len(methods) > 0 {
			result = resultMethodNotAllowed
			w.Header().Set("Allow", strings.Join(methods, ", "))
			m.methodNotAllowed.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		result = resultNotFound
		m.notFound.ServeHTTP(w, r.WithContext(ctx))
		return
	}

	h, ok := match.Handler.(http.Handler)
	if !ok {
		m.logger.Error("route %s holds %T, not an http.Handler", match.Pattern, match.Handler)
		result = resultNotFound
		m.notFound.ServeHTTP(w, r.WithContext(ctx))
		return
	}

	span.SetAttributes(attribute.String("http.route", match.Pattern))
	if match.Wildcard {
		span.SetAttributes(attribute.String("segtrie.remainder", match.Remainder))
	}

	ctx = segtrie.WithMatch(ctx, match)
	ctx = context.WithValue(ctx, httprouter.ParamsKey, toHTTPRouterParams(match.Params))
	h.ServeHTTP(w, r.WithContext(ctx))
}

func isNilHandler(h http.Handler) bool {
	if h == nil {
		return true
	}
	fn, ok := h.(http.HandlerFunc)
	return ok && fn == nil
}

// toHTTPRouterParams orders params by name so handlers see a stable
// slice.
func toHTTPRouterParams(params segtrie.Params) httprouter.Params {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(httprouter.Params, 0, len(keys))
	for _, k := range keys {
		out = append(out, httprouter.Param{Key: k, Value: params[k]})
	}
	return out
}
