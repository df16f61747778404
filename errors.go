package segtrie

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeRouteConflict = "ROUTE_CONFLICT"
	TextCodeRouteShadowed = "ROUTE_SHADOWED"
	TextCodeInvalidGlob   = "INVALID_GLOB"
)

type conflict struct {
	reason          string
	index           int
	segment         string
	existingSegment string
}

func newConflictError(pattern string, c *conflict) error {
	message := fmt.Sprintf("route conflict: %s", pattern)
	if c.reason != "" {
		message = fmt.Sprintf("%s (%s)", message, c.reason)
	}

	metadata := map[string]any{
		"pattern": pattern,
		"reason":  c.reason,
	}

	if c.index >= 0 {
		metadata["segment_index"] = c.index
		metadata["segment"] = c.segment
		metadata["existing_segment"] = c.existingSegment
	}

	return goerrors.New(message, goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(TextCodeRouteConflict).
		WithMetadata(metadata)
}

func newShadowedError(pattern, wildcard string) error {
	message := fmt.Sprintf("route shadowed: %s is unreachable behind %s", pattern, wildcard)

	return goerrors.New(message, goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(TextCodeRouteShadowed).
		WithMetadata(map[string]any{
			"pattern":  pattern,
			"wildcard": wildcard,
		})
}

func newInvalidGlobError(expr string, err error) error {
	return goerrors.New(fmt.Sprintf("invalid route filter %q: %v", expr, err), goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidGlob).
		WithMetadata(map[string]any{
			"filter": expr,
		})
}
