package segtrie

import "strings"

// PathParam returns a parameter segment using the default prefix (e.g., ":id").
func PathParam(name string) string {
	return DefaultParamPrefix + name
}

// ParamSegment returns a parameter segment using the tree prefix.
func (t *Tree) ParamSegment(name string) string {
	return t.paramPrefix + name
}

// WildcardSegment returns the trailing wildcard marker of the tree.
func (t *Tree) WildcardSegment() string {
	return t.wildcardSymbol
}

// Pattern joins segments with the tree separator, adding the leading
// separator. Segments are not escaped.
//
// Example:
//
//	tree.Pattern("user", tree.ParamSegment("id"), "posts") // "/user/:id/posts"
func (t *Tree) Pattern(segments ...string) string {
	return t.pathSeparator + strings.Join(segments, t.pathSeparator)
}
