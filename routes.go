package segtrie

import (
	"github.com/gobwas/glob"
)

// Route describes one registered handler slot.
type Route struct {
	Pattern  string
	Handler  any
	Wildcard bool

	parts []routePart
}

// Routes lists every handler registered below the root, most specific
// first. The root handler is not included, see RootHandler.
func (t *Tree) Routes() []Route {
	var routes []Route
	t.walk(t.root, nil, func(n *Node, parts []routePart) {
		if len(parts) > 0 && n.handler != nil {
			routes = append(routes, t.newRoute(parts, n.handler, false))
		}
		if n.wildcardHandler != nil {
			routes = append(routes, t.newRoute(parts, n.wildcardHandler, true))
		}
	})
	sortRoutesBySpecificity(routes)
	return routes
}

// Filter returns the routes whose pattern matches the glob expression.
// The path separator delimits glob segments, so "*" does not cross it
// while "**" does.
func (t *Tree) Filter(expr string) ([]Route, error) {
	var separators []rune
	if sep := []rune(t.pathSeparator); len(sep) == 1 {
		separators = sep
	}

	g, err := glob.Compile(expr, separators...)
	if err != nil {
		return nil, newInvalidGlobError(expr, err)
	}

	var out []Route
	for _, r := range t.Routes() {
		if g.Match(r.Pattern) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Validate reports handlers that can never be matched because a
// wildcard handler on one of their ancestors wins first.
func (t *Tree) Validate() []error {
	var errs []error

	var visit func(n *Node, parts []routePart, shadowedBy string)
	visit = func(n *Node, parts []routePart, shadowedBy string) {
		if shadowedBy != "" {
			if n.handler != nil {
				errs = append(errs, newShadowedError(t.newRoute(parts, n.handler, false).Pattern, shadowedBy))
			}
			if n.wildcardHandler != nil {
				errs = append(errs, newShadowedError(t.newRoute(parts, n.wildcardHandler, true).Pattern, shadowedBy))
			}
		} else if n.wildcardHandler != nil {
			shadowedBy = t.newRoute(parts, n.wildcardHandler, true).Pattern
		}

		t.eachChild(n, parts, func(child *Node, childParts []routePart) {
			visit(child, childParts, shadowedBy)
		})
	}
	visit(t.root, nil, "")

	return errs
}

func (t *Tree) newRoute(parts []routePart, handler any, wildcard bool) Route {
	rp := make([]routePart, len(parts), len(parts)+1)
	copy(rp, parts)

	if wildcard {
		rp = append(rp, routePart{text: t.wildcardSymbol, kind: segmentWildcard})
	}

	texts := make([]string, len(rp))
	for i, p := range rp {
		texts[i] = p.text
	}

	return Route{
		Pattern:  t.join(texts),
		Handler:  handler,
		Wildcard: wildcard,
		parts:    rp,
	}
}

// walk visits n and its descendants depth first.
func (t *Tree) walk(n *Node, parts []routePart, fn func(*Node, []routePart)) {
	fn(n, parts)
	t.eachChild(n, parts, func(child *Node, childParts []routePart) {
		t.walk(child, childParts, fn)
	})
}

func (t *Tree) eachChild(n *Node, parts []routePart, fn func(*Node, []routePart)) {
	for segment, child := range n.static {
		fn(child, appendPart(parts, routePart{text: segment, kind: segmentStatic}))
	}
	if n.dynamic != nil {
		fn(n.dynamic.node, appendPart(parts, routePart{text: t.paramPrefix + n.dynamic.param, kind: segmentParam}))
	}
}

func appendPart(parts []routePart, p routePart) []routePart {
	out := make([]routePart, len(parts)+1)
	copy(out, parts)
	out[len(parts)] = p
	return out
}
