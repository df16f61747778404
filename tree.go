// Package segtrie resolves paths against a set of registered patterns
// using a tree keyed on path segments.
//
// Patterns are made of literal segments, named parameter segments
// (":id") and an optional trailing wildcard ("*"). At every level a
// literal child is preferred over the parameter child, and a wildcard
// handler on a node matches everything below it.
//
//	tree := segtrie.New(nil)
//	tree.Add("/user/:id", showUser)
//	m, ok := tree.Get("/user/42") // m.Handler == showUser, m.Params["id"] == "42"
//
// A Tree is not safe for concurrent mutation; see SyncTree.
package segtrie

import (
	"strings"
)

// Tree is a segment trie. The zero value is not usable, call New.
type Tree struct {
	root *Node

	paramPrefix    string
	pathSeparator  string
	wildcardSymbol string
	wildcardMode   WildcardMode

	logger Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithParamPrefix sets the marker that starts a parameter segment.
// An empty prefix keeps the default.
func WithParamPrefix(prefix string) Option {
	return func(t *Tree) {
		if prefix != "" {
			t.paramPrefix = prefix
		}
	}
}

// WithPathSeparator sets the segment separator.
// An empty separator keeps the default.
func WithPathSeparator(sep string) Option {
	return func(t *Tree) {
		if sep != "" {
			t.pathSeparator = sep
		}
	}
}

// WithWildcardSymbol sets the trailing wildcard marker.
// An empty symbol keeps the default.
func WithWildcardSymbol(symbol string) Option {
	return func(t *Tree) {
		if symbol != "" {
			t.wildcardSymbol = symbol
		}
	}
}

func WithWildcardMode(mode WildcardMode) Option {
	return func(t *Tree) {
		t.wildcardMode = mode.normalize()
	}
}

func WithLogger(logger Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a tree whose root holds rootHandler.
func New(rootHandler any, opts ...Option) *Tree {
	t := &Tree{
		root:           newNode(rootHandler),
		paramPrefix:    DefaultParamPrefix,
		pathSeparator:  DefaultPathSeparator,
		wildcardSymbol: DefaultWildcardSymbol,
		wildcardMode:   WildcardModeTrailing,
		logger:         &defaultLogger{},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// NewFromConfig creates a tree using the markers in cfg. Options are
// applied after the config.
func NewFromConfig(rootHandler any, cfg Config, opts ...Option) *Tree {
	cfg = cfg.WithDefaults()
	base := []Option{
		WithParamPrefix(cfg.ParamPrefix),
		WithPathSeparator(cfg.PathSeparator),
		WithWildcardSymbol(cfg.WildcardSymbol),
		WithWildcardMode(cfg.WildcardMode),
	}
	return New(rootHandler, append(base, opts...)...)
}

// Config returns the markers the tree was built with.
func (t *Tree) Config() Config {
	return Config{
		ParamPrefix:    t.paramPrefix,
		PathSeparator:  t.pathSeparator,
		WildcardSymbol: t.wildcardSymbol,
		WildcardMode:   t.wildcardMode,
	}
}

// Root returns the root node for callers that need the node level API.
func (t *Tree) Root() *Node {
	return t.root
}

func (t *Tree) RootHandler() any {
	return t.root.handler
}

// split strips one leading separator and splits the rest. The result
// always has at least one element.
func (t *Tree) split(path string) []string {
	return strings.Split(strings.TrimPrefix(path, t.pathSeparator), t.pathSeparator)
}

func (t *Tree) isParam(segment string) bool {
	return strings.HasPrefix(segment, t.paramPrefix)
}

func (t *Tree) paramName(segment string) string {
	return strings.TrimPrefix(segment, t.paramPrefix)
}

func (t *Tree) isWildcard(segments []string, i int) bool {
	return t.wildcardMode == WildcardModeTrailing &&
		i == len(segments)-1 &&
		segments[i] == t.wildcardSymbol
}

// Add registers handler under pattern. Existing handlers are
// overwritten and a nil handler clears the slot. A parameter segment
// whose name differs from the parameter already stored at that
// position replaces it, dropping every pattern registered below it.
func (t *Tree) Add(pattern string, handler any) {
	segments := t.split(pattern)
	current := t.root

	for i, segment := range segments {
		if t.isWildcard(segments, i) {
			t.logger.Debug("add wildcard %s", pattern)
			current.SetWildcardHandler(handler)
			return
		}

		if t.isParam(segment) {
			name := t.paramName(segment)
			next, existing, ok := current.DynamicChild()
			switch {
			case !ok:
				next = current.SetDynamicChild(name, nil)
			case existing != name:
				t.logger.Info("pattern %s replaces parameter %q with %q at segment %d", pattern, existing, name, i)
				next = current.SetDynamicChild(name, nil)
			}
			current = next
			continue
		}

		next, ok := current.StaticChild(segment)
		if !ok {
			next = current.AddStaticChild(segment, nil)
		}
		current = next
	}

	t.logger.Debug("add %s", pattern)
	current.SetHandler(handler)
}

// AddStrict registers handler under pattern unless doing so would
// overwrite a handler or replace a parameter child. On conflict the
// tree is left untouched.
func (t *Tree) AddStrict(pattern string, handler any) error {
	if conflict := t.findConflict(pattern); conflict != nil {
		return newConflictError(pattern, conflict)
	}
	t.Add(pattern, handler)
	return nil
}

// findConflict walks pattern without creating nodes.
func (t *Tree) findConflict(pattern string) *conflict {
	segments := t.split(pattern)
	current := t.root

	for i, segment := range segments {
		if current == nil {
			return nil
		}

		if t.isWildcard(segments, i) {
			if current.wildcardHandler != nil {
				return &conflict{
					reason:          "wildcard handler already registered",
					index:           i,
					segment:         segment,
					existingSegment: segment,
				}
			}
			return nil
		}

		if t.isParam(segment) {
			next, existing, ok := current.DynamicChild()
			if ok && existing != t.paramName(segment) {
				return &conflict{
					reason:          "parameter segment conflicts with existing parameter",
					index:           i,
					segment:         segment,
					existingSegment: t.paramPrefix + existing,
				}
			}
			current = next
			continue
		}

		current, _ = current.StaticChild(segment)
	}

	if current != nil && current.handler != nil {
		return &conflict{
			reason: "duplicate route",
			index:  -1,
		}
	}

	return nil
}

// Match is the result of a successful lookup.
type Match struct {
	Handler any
	Params  Params
	// Pattern is the registered pattern that matched, rebuilt from the
	// tree markers.
	Pattern string
	// Wildcard is set when the match came from a wildcard handler.
	Wildcard bool
	// Remainder holds the segments left unconsumed by a wildcard match.
	Remainder string
}

// Get resolves path. The second result is false when nothing matches.
func (t *Tree) Get(path string) (Match, bool) {
	segments := t.split(path)
	params := Params{}
	matched := make([]string, 0, len(segments)+1)
	current := t.root

	for i, segment := range segments {
		if current.wildcardHandler != nil {
			return Match{
				Handler:   current.wildcardHandler,
				Params:    params,
				Pattern:   t.join(append(matched, t.wildcardSymbol)),
				Wildcard:  true,
				Remainder: strings.Join(segments[i:], t.pathSeparator),
			}, true
		}

		next, param, captured, ok := current.child(segment)
		if !ok {
			return Match{}, false
		}
		if captured {
			params[param] = segment
			matched = append(matched, t.paramPrefix+param)
		} else {
			matched = append(matched, segment)
		}
		current = next
	}

	if current.handler == nil {
		return Match{}, false
	}

	return Match{Handler: current.handler, Params: params, Pattern: t.join(matched)}, true
}

// join rebuilds a pattern from its segments.
func (t *Tree) join(segments []string) string {
	return t.Pattern(segments...)
}

// Lookup is Get in three value form.
func (t *Tree) Lookup(path string) (any, Params, bool) {
	m, ok := t.Get(path)
	if !ok {
		return nil, nil, false
	}
	return m.Handler, m.Params, true
}
