package segtrie_test

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	segtrie "github.com/goliatone/go-segtrie"
)

func TestTree_ExactMatch(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/user/:id", "H")

	m, ok := tree.Get("/user/123")
	require.True(t, ok)
	assert.Equal(t, "H", m.Handler)
	assert.Equal(t, segtrie.Params{"id": "123"}, m.Params)
	assert.Equal(t, "/user/:id", m.Pattern)
	assert.False(t, m.Wildcard)
}

func TestTree_StructuralMismatch(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/user/:id", "H")

	tests := []struct {
		name string
		path string
	}{
		{name: "one segment short", path: "/user"},
		{name: "one segment long", path: "/user/123/extra"},
		{name: "unknown prefix", path: "/account/123"},
		{name: "empty path", path: ""},
		{name: "separator only", path: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := tree.Get(tt.path)
			assert.False(t, ok)
			assert.Nil(t, m.Handler)
			assert.Nil(t, m.Params)
		})
	}
}

func TestTree_StaticBeatsDynamic(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/user/:id", "H1")
	tree.Add("/user/admin", "H2")

	m, ok := tree.Get("/user/admin")
	require.True(t, ok)
	assert.Equal(t, "H2", m.Handler)
	assert.Empty(t, m.Params)

	m, ok = tree.Get("/user/42")
	require.True(t, ok)
	assert.Equal(t, "H1", m.Handler)
	assert.Equal(t, segtrie.Params{"id": "42"}, m.Params)
}

func TestTree_NoBacktracking(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/user/admin", "admin")
	tree.Add("/user/:id/posts", "posts")

	// the static "admin" edge is taken and never retried as :id
	_, ok := tree.Get("/user/admin/posts")
	assert.False(t, ok)

	m, ok := tree.Get("/user/7/posts")
	require.True(t, ok)
	assert.Equal(t, "posts", m.Handler)
}

func TestTree_Overwrite(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a", "H1")
	tree.Add("/a", "H2")

	m, ok := tree.Get("/a")
	require.True(t, ok)
	assert.Equal(t, "H2", m.Handler)
}

func TestTree_AddNilClearsHandler(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a/b", "H")
	tree.Add("/a/b", nil)

	_, ok := tree.Get("/a/b")
	assert.False(t, ok)
}

func TestTree_DynamicReplacementDiscardsSubtree(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a/:x/b", "H1")
	tree.Add("/a/:y/c", "H2")

	_, ok := tree.Get("/a/1/b")
	assert.False(t, ok)

	m, ok := tree.Get("/a/1/c")
	require.True(t, ok)
	assert.Equal(t, "H2", m.Handler)
	assert.Equal(t, segtrie.Params{"y": "1"}, m.Params)
}

func TestTree_DynamicSameNameIsReused(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a/:x/b", "H1")
	tree.Add("/a/:x/c", "H2")

	m, ok := tree.Get("/a/1/b")
	require.True(t, ok)
	assert.Equal(t, "H1", m.Handler)

	m, ok = tree.Get("/a/2/c")
	require.True(t, ok)
	assert.Equal(t, "H2", m.Handler)
	assert.Equal(t, segtrie.Params{"x": "2"}, m.Params)
}

func TestTree_IdempotentLookup(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/org/:org/repo/:repo", "H")

	first, ok := tree.Get("/org/acme/repo/widgets")
	require.True(t, ok)

	for i := 0; i < 5; i++ {
		again, ok := tree.Get("/org/acme/repo/widgets")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestTree_ParamsAreFreshPerCall(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/user/:id", "H")

	m1, _ := tree.Get("/user/1")
	m1.Params["id"] = "tampered"
	m1.Params["extra"] = "x"

	m2, ok := tree.Get("/user/1")
	require.True(t, ok)
	assert.Equal(t, segtrie.Params{"id": "1"}, m2.Params)
}

func TestTree_SeparatorStripping(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a/b", "H")

	for _, path := range []string{"/a/b", "a/b"} {
		m, ok := tree.Get(path)
		require.True(t, ok, path)
		assert.Equal(t, "H", m.Handler)
	}

	// only one leading separator is stripped
	_, ok := tree.Get("//a/b")
	assert.False(t, ok)

	tree.Add("//a/b", "double")
	m, ok := tree.Get("//a/b")
	require.True(t, ok)
	assert.Equal(t, "double", m.Handler)
}

func TestTree_TrailingSeparatorIsEmptySegment(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a", "bare")
	tree.Add("/a/", "slash")

	m, ok := tree.Get("/a")
	require.True(t, ok)
	assert.Equal(t, "bare", m.Handler)

	m, ok = tree.Get("/a/")
	require.True(t, ok)
	assert.Equal(t, "slash", m.Handler)
}

func TestTree_EmptyPatternIsLiteralEmptySegment(t *testing.T) {
	tree := segtrie.New("root")
	tree.Add("", "empty")

	assert.Equal(t, "root", tree.RootHandler())

	for _, path := range []string{"", "/"} {
		m, ok := tree.Get(path)
		require.True(t, ok, path)
		assert.Equal(t, "empty", m.Handler)
	}
}

func TestTree_EmptyParamName(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/files/:", "H")

	m, ok := tree.Get("/files/readme")
	require.True(t, ok)
	assert.Equal(t, segtrie.Params{"": "readme"}, m.Params)
}

func TestTree_DynamicSkipsEmptySegment(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/user/:id", "H")

	_, ok := tree.Get("/user/")
	assert.False(t, ok)

	tree.Add("/user/", "index")
	m, ok := tree.Get("/user/")
	require.True(t, ok)
	assert.Equal(t, "index", m.Handler)
	assert.Empty(t, m.Params)
}

func TestTree_RawSegmentValues(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/q/:term", "H")

	m, ok := tree.Get("/q/hello%20world")
	require.True(t, ok)
	assert.Equal(t, "hello%20world", m.Params.Get("term"))
}

func TestTree_IntermediateNodeWithoutHandler(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a/b/c", "H")

	_, ok := tree.Get("/a/b")
	assert.False(t, ok)
}

func TestTree_CaseSensitive(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/About", "H")

	_, ok := tree.Get("/about")
	assert.False(t, ok)
}

func TestTree_HandlerIdentityPreserved(t *testing.T) {
	type handler struct{ name string }
	h := &handler{name: "show"}

	tree := segtrie.New(nil)
	tree.Add("/show", h)

	got, params, ok := tree.Lookup("/show")
	require.True(t, ok)
	assert.Same(t, h, got)
	assert.Empty(t, params)
}

func TestTree_LookupMiss(t *testing.T) {
	tree := segtrie.New(nil)

	h, params, ok := tree.Lookup("/nothing")
	assert.False(t, ok)
	assert.Nil(t, h)
	assert.Nil(t, params)
}

func TestTree_ParamsOnlyFromTraversedPath(t *testing.T) {
	tree := segtrie.New(nil)
	tree.Add("/a/:id", "A")
	tree.Add("/b/:id/:slug", "B")

	m, ok := tree.Get("/b/1/hello")
	require.True(t, ok)
	assert.Equal(t, segtrie.Params{"id": "1", "slug": "hello"}, m.Params)

	m, ok = tree.Get("/a/9")
	require.True(t, ok)
	assert.Equal(t, segtrie.Params{"id": "9"}, m.Params)
}

func TestTree_CustomMarkers(t *testing.T) {
	tree := segtrie.New(nil,
		segtrie.WithPathSeparator("."),
		segtrie.WithParamPrefix("$"),
		segtrie.WithWildcardSymbol("#"),
	)
	tree.Add(".orders.$id", "order")
	tree.Add("events.#", "events")

	m, ok := tree.Get("orders.77")
	require.True(t, ok)
	assert.Equal(t, "order", m.Handler)
	assert.Equal(t, segtrie.Params{"id": "77"}, m.Params)
	assert.Equal(t, ".orders.$id", m.Pattern)

	m, ok = tree.Get(".events.user.created")
	require.True(t, ok)
	assert.Equal(t, "events", m.Handler)
	assert.Equal(t, "user.created", m.Remainder)

	// the default markers carry no meaning here
	tree.Add("/user/:id", "slash")
	m, ok = tree.Get("/user/:id")
	require.True(t, ok)
	assert.Equal(t, "slash", m.Handler)
	_, ok = tree.Get("/user/1")
	assert.False(t, ok)
}

func TestTree_EmptyOptionsKeepDefaults(t *testing.T) {
	tree := segtrie.New(nil,
		segtrie.WithPathSeparator(""),
		segtrie.WithParamPrefix(""),
		segtrie.WithWildcardSymbol(""),
	)

	assert.Equal(t, segtrie.DefaultConfig(), tree.Config())
}

func TestTree_MultiCharSeparator(t *testing.T) {
	tree := segtrie.New(nil, segtrie.WithPathSeparator("::"), segtrie.WithParamPrefix("@"))
	tree.Add("::pkg::@name", "H")

	m, ok := tree.Get("pkg::segtrie")
	require.True(t, ok)
	assert.Equal(t, segtrie.Params{"name": "segtrie"}, m.Params)
}

func TestTree_AddStrict(t *testing.T) {
	t.Run("duplicate route", func(t *testing.T) {
		tree := segtrie.New(nil)
		require.NoError(t, tree.AddStrict("/a", "H1"))

		err := tree.AddStrict("/a", "H2")
		require.Error(t, err)

		var rich *goerrors.Error
		require.True(t, errors.As(err, &rich))
		assert.Equal(t, http.StatusConflict, rich.Code)
		assert.Equal(t, segtrie.TextCodeRouteConflict, rich.TextCode)
		assert.Contains(t, err.Error(), "duplicate route")

		m, _ := tree.Get("/a")
		assert.Equal(t, "H1", m.Handler)
	})

	t.Run("parameter rename", func(t *testing.T) {
		tree := segtrie.New(nil)
		require.NoError(t, tree.AddStrict("/a/:x/b", "H1"))

		err := tree.AddStrict("/a/:y/c", "H2")
		require.Error(t, err)

		var rich *goerrors.Error
		require.True(t, errors.As(err, &rich))
		assert.Equal(t, 1, rich.Metadata["segment_index"])
		assert.Equal(t, ":y", rich.Metadata["segment"])
		assert.Equal(t, ":x", rich.Metadata["existing_segment"])

		m, ok := tree.Get("/a/1/b")
		require.True(t, ok)
		assert.Equal(t, "H1", m.Handler)
		_, ok = tree.Get("/a/1/c")
		assert.False(t, ok)
	})

	t.Run("wildcard registered twice", func(t *testing.T) {
		tree := segtrie.New(nil)
		require.NoError(t, tree.AddStrict("/static/*", "H1"))
		assert.Error(t, tree.AddStrict("/static/*", "H2"))
	})

	t.Run("new branches are accepted", func(t *testing.T) {
		tree := segtrie.New(nil)
		require.NoError(t, tree.AddStrict("/a/:x/b", "H1"))
		require.NoError(t, tree.AddStrict("/a/:x/c", "H2"))
		require.NoError(t, tree.AddStrict("/a/static", "H3"))
		require.NoError(t, tree.AddStrict("/a", "H4"))
		require.NoError(t, tree.AddStrict("/a/*", "H5"))
	})
}

func TestNewFromConfig(t *testing.T) {
	tree := segtrie.NewFromConfig("root", segtrie.Config{
		PathSeparator: ".",
	})

	cfg := tree.Config()
	assert.Equal(t, ".", cfg.PathSeparator)
	assert.Equal(t, segtrie.DefaultParamPrefix, cfg.ParamPrefix)
	assert.Equal(t, segtrie.DefaultWildcardSymbol, cfg.WildcardSymbol)
	assert.Equal(t, segtrie.WildcardModeTrailing, cfg.WildcardMode)
	assert.Equal(t, "root", tree.RootHandler())

	tree.Add("a.:b", "H")
	m, ok := tree.Get(".a.c")
	require.True(t, ok)
	assert.Equal(t, segtrie.Params{"b": "c"}, m.Params)
}
