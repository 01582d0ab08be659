package preview

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry maps format names and aliases to writers.
type Registry struct {
	writers map[string]Writer
	order   []string
}

// NewRegistry returns a registry with the PNG and JPEG writers.
func NewRegistry() *Registry {
	r := &Registry{writers: make(map[string]Writer)}
	for _, w := range []Writer{PNGWriter{}, JPEGWriter{}} {
		r.writers[w.Format()] = w
		r.order = append(r.order, w.Format())
	}
	r.writers["jpg"] = r.writers["jpeg"]
	return r
}

// Get returns the writer for format, or an error naming the known formats.
func (r *Registry) Get(format string) (Writer, error) {
	if w, ok := r.writers[strings.ToLower(format)]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("unsupported preview format %q (have %s)", format, strings.Join(r.order, ", "))
}

// ForPath picks a writer from the extension of path, defaulting to PNG.
func (r *Registry) ForPath(path string) (Writer, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return r.writers["png"], nil
	}
	return r.Get(ext)
}

// Available returns format names in priority order.
func (r *Registry) Available() []string {
	return append([]string(nil), r.order...)
}

// String returns a summary of available writers.
func (r *Registry) String() string {
	return fmt.Sprintf("preview writers: %s", strings.Join(r.order, ", "))
}
