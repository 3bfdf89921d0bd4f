package snapshot

import (
	"io"
	"strings"
)

// Reader converts a captured snapshot document into a Table.
type Reader interface {
	Read(r io.Reader) (Table, error)
	Format() string
}

// Registry holds named readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(sr Reader) {
	key := strings.ToLower(sr.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate snapshot format: " + key)
	}
	r.readers[key] = sr
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	r.Register(&HTMLReader{})
	return r
}
