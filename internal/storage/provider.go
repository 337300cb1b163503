// Package storage defines read access to the markdown content tree.
package storage

import "time"

// Entry describes one markdown file in the content tree.
type Entry struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for content file access. Paths are slash
// separated and relative to the content root.
type Provider interface {
	// List returns an entry for every .md file under dir.
	List(dir string) ([]Entry, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Root returns the absolute content root.
	Root() string
}
