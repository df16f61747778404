package segtrie_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	segtrie "github.com/goliatone/go-segtrie"
)

func TestSyncTree_ConcurrentAddAndGet(t *testing.T) {
	st := segtrie.NewSyncTree(segtrie.New(nil))
	st.Add("/user/:id", "user")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			st.Add(fmt.Sprintf("/items/%d", i), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			m, ok := st.Get(fmt.Sprintf("/user/%d", i))
			assert.True(t, ok)
			assert.Equal(t, "user", m.Handler)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		h, _, ok := st.Lookup(fmt.Sprintf("/items/%d", i))
		require.True(t, ok)
		assert.Equal(t, i, h)
	}
	assert.Len(t, st.Routes(), 9)
}

func TestSyncTree_NilTree(t *testing.T) {
	st := segtrie.NewSyncTree(nil)
	require.NoError(t, st.AddStrict("/a", "a"))
	assert.Error(t, st.AddStrict("/a", "b"))
	assert.Empty(t, st.Validate())
	assert.Equal(t, segtrie.DefaultConfig(), st.Config())
}
