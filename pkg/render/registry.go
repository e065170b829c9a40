package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned by Get for unknown renderer names.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry stores renderers by name. The first registered renderer is the
// default returned by Negotiate when nothing else matches.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	order     []string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := normalizeName(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name (case-insensitive).
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Negotiate picks the renderer whose media type appears first in an HTTP
// Accept header. Wildcards and unknown types fall back to the default
// renderer; ok is false only when the registry is empty.
func (r *Registry) Negotiate(accept string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil, false
	}
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || strings.Contains(mediaType, "*") {
			continue
		}
		for _, name := range r.order {
			renderer := r.renderers[name]
			if ct, _, err := mime.ParseMediaType(renderer.ContentType()); err == nil && ct == mediaType {
				return renderer, true
			}
		}
	}
	return r.renderers[r.order[0]], true
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
