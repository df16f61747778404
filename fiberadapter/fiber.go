// Package fiberadapter dispatches fiber requests through segment trees.
//
// A path registered only under other methods answers 405 with an Allow
// header, as httpmux does.
package fiberadapter

import (
	"sort"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	segtrie "github.com/goliatone/go-segtrie"
)

const (
	localsParams    = "segtrie.params"
	localsPattern   = "segtrie.pattern"
	localsRemainder = "segtrie.remainder"
)

// AnyMethod registers a handler for every method not registered
// explicitly.
const AnyMethod = "*"

type Config struct {
	// PassThrough calls the next fiber handler on a miss instead of
	// returning fiber.ErrNotFound or fiber.ErrMethodNotAllowed.
	PassThrough bool
	// TreeOptions are applied to every per-method tree.
	TreeOptions []segtrie.Option
	Logger      segtrie.Logger
}

var ConfigDefault = Config{
	PassThrough: false,
}

// Router holds fiber handlers in one tree per method.
type Router struct {
	cfg   Config
	mu    sync.RWMutex
	trees map[string]*segtrie.SyncTree
}

func New(config ...Config) *Router {
	cfg := configDefault(config...)
	return &Router{
		cfg:   cfg,
		trees: make(map[string]*segtrie.SyncTree),
	}
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		cfg := ConfigDefault
		cfg.Logger = segtrie.NewZapLogger(nil)
		return cfg
	}

	cfg := config[0]
	if cfg.Logger == nil {
		cfg.Logger = segtrie.NewZapLogger(nil)
	}
	return cfg
}

// Add registers h for method and pattern. A nil handler removes the
// route.
func (r *Router) Add(method, pattern string, h fiber.Handler) *Router {
	method = strings.ToUpper(method)
	r.cfg.Logger.Debug("fiber add %s %s", method, pattern)

	var value any
	if h != nil {
		value = h
	}
	r.tree(method, true).Add(pattern, value)
	return r
}

func (r *Router) Get(pattern string, h fiber.Handler) *Router {
	return r.Add(fiber.MethodGet, pattern, h)
}

func (r *Router) Post(pattern string, h fiber.Handler) *Router {
	return r.Add(fiber.MethodPost, pattern, h)
}

func (r *Router) Put(pattern string, h fiber.Handler) *Router {
	return r.Add(fiber.MethodPut, pattern, h)
}

func (r *Router) Delete(pattern string, h fiber.Handler) *Router {
	return r.Add(fiber.MethodDelete, pattern, h)
}

func (r *Router) All(pattern string, h fiber.Handler) *Router {
	return r.Add(AnyMethod, pattern, h)
}

func (r *Router) tree(method string, create bool) *segtrie.SyncTree {
	r.mu.RLock()
	tree, ok := r.trees[method]
	r.mu.RUnlock()
	if ok || !create {
		return tree
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tree, ok = r.trees[method]; ok {
		return tree
	}
	tree = segtrie.NewSyncTree(segtrie.New(nil, r.cfg.TreeOptions...))
	r.trees[method] = tree
	return tree
}

func (r *Router) lookup(method, path string) (segtrie.Match, bool) {
	candidates := []string{method}
	if method == fiber.MethodHead {
		candidates = append(candidates, fiber.MethodGet)
	}
	candidates = append(candidates, AnyMethod)

	for _, c := range candidates {
		tree := r.tree(c, false)
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
func (r *Router) allowed(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var methods []string
	for method, tree := range r.trees {
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

// Handler returns the fiber handler that performs dispatch. Mount it
// with app.Use.
func (r *Router) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// params slice the path, which fasthttp reuses after the handler
		path := utils.ImmutableString(c.Path())
		match, ok := r.lookup(c.Method(), path)
		if !ok {
			if r.cfg.PassThrough {
				return c.Next()
			}
			if methods := r.allowed(path); len(methods) > 0 {
				c.Set(fiber.HeaderAllow, strings.Join(methods, ", "))
				return fiber.ErrMethodNotAllowed
			}
			return fiber.ErrNotFound
		}

		h, ok := match.Handler.(fiber.Handler)
		if !ok {
			r.cfg.Logger.Error("route %s holds %T, not a fiber.Handler", match.Pattern, match.Handler)
			return fiber.ErrInternalServerError
		}

		c.Locals(localsParams, match.Params)
		c.Locals(localsPattern, match.Pattern)
		if match.Wildcard {
			c.Locals(localsRemainder, match.Remainder)
		}

		return h(c)
	}
}

// Params returns the parameters bound by the dispatching route.
func Params(c *fiber.Ctx) segtrie.Params {
	if p, ok := c.Locals(localsParams).(segtrie.Params); ok {
		return p
	}
	return segtrie.Params{}
}

func Param(c *fiber.Ctx, name string, defaultValue ...string) string {
	return Params(c).Get(name, defaultValue...)
}

func Pattern(c *fiber.Ctx) string {
	p, _ := c.Locals(localsPattern).(string)
	return p
}

// Remainder returns the path left unconsumed by a wildcard route.
func Remainder(c *fiber.Ctx) (string, bool) {
	rest, ok := c.Locals(localsRemainder).(string)
	return rest, ok
}
