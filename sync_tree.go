package segtrie

import (
	"io"
	"sync"
)

// SyncTree guards a Tree with a readers-writer lock so routes can be
// registered while lookups are being served.
type SyncTree struct {
	mu   sync.RWMutex
	tree *Tree
}

func NewSyncTree(tree *Tree) *SyncTree {
	if tree == nil {
		tree = New(nil)
	}
	return &SyncTree{tree: tree}
}

func (s *SyncTree) Add(pattern string, handler any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Add(pattern, handler)
}

func (s *SyncTree) AddStrict(pattern string, handler any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.AddStrict(pattern, handler)
}

func (s *SyncTree) Get(path string) (Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Get(path)
}

func (s *SyncTree) Lookup(path string) (any, Params, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Lookup(path)
}

func (s *SyncTree) Routes() []Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Routes()
}

func (s *SyncTree) Validate() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Validate()
}

func (s *SyncTree) Print(w io.Writer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.tree.Print(w)
}

func (s *SyncTree) Config() Config {
	return s.tree.Config()
}
