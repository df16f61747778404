package segtrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	segtrie "github.com/goliatone/go-segtrie"
)

func TestPathParam(t *testing.T) {
	assert.Equal(t, ":id", segtrie.PathParam("id"))
}

func TestTree_Pattern(t *testing.T) {
	tree := segtrie.New(nil, segtrie.WithPathSeparator("."), segtrie.WithParamPrefix("$"), segtrie.WithWildcardSymbol("#"))

	pattern := tree.Pattern("orders", tree.ParamSegment("id"), tree.WildcardSegment())
	assert.Equal(t, ".orders.$id.#", pattern)

	tree.Add(pattern, "order.files")
	m, ok := tree.Get(".orders.7.a.b")
	require.True(t, ok)
	assert.Equal(t, "order.files", m.Handler)
	assert.Equal(t, pattern, m.Pattern)
	assert.Equal(t, "a.b", m.Remainder)
}
