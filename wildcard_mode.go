package segtrie

// WildcardMode controls how a trailing wildcard segment is treated on insertion.
type WildcardMode string

const (
	// WildcardModeTrailing binds a pattern ending in the wildcard symbol to the
	// wildcard slot of the node before it.
	WildcardModeTrailing WildcardMode = "trailing"
	// WildcardModeLiteral stores the wildcard symbol as a plain static segment.
	// Wildcard slots can then only be set through Node.SetWildcardHandler.
	WildcardModeLiteral WildcardMode = "literal"
)

func (m WildcardMode) normalize() WildcardMode {
	switch m {
	case WildcardModeLiteral:
		return WildcardModeLiteral
	default:
		return WildcardModeTrailing
	}
}

func (m WildcardMode) valid() bool {
	return m == "" || m == WildcardModeTrailing || m == WildcardModeLiteral
}

func (m WildcardMode) String() string {
	return string(m.normalize())
}
