package catalog

import "sync/atomic"

// Store holds the current catalog snapshot. Replacing it is atomic, so a
// reader sees either the old or the new catalog, never a mix.
type Store struct {
	cur atomic.Pointer[Catalog]
}

// NewStore returns a store holding c.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.cur.Store(c)
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() *Catalog {
	return s.cur.Load()
}

// Swap installs c and returns the previous snapshot.
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.cur.Swap(c)
}
