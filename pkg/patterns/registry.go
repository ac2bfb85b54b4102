package patterns

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps language tags to pattern providers. Selection happens once
// per execution; unrecognized tags fall back to the generic provider so a
// trace can always be built.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	fallback  Provider
}

// NewRegistry creates a registry preloaded with the built-in providers and
// the language aliases of the surrounding application's execution service.
func NewRegistry() *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		fallback:  NewGeneric(),
	}

	python := NewPython()
	cstyle := NewCStyle()

	for _, tag := range []string{"python", "py", "ruby", "rb"} {
		r.Register(tag, python)
	}
	for _, tag := range []string{
		"javascript", "js", "node",
		"typescript", "ts",
		"java", "c", "cpp", "c++",
		"go", "golang",
		"rust", "rs",
	} {
		r.Register(tag, cstyle)
	}

	return r
}

// Register adds or replaces the provider for a tag. Tags are
// case-insensitive.
func (r *Registry) Register(tag string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[normalize(tag)] = p
}

// Provider resolves a language tag, falling back to the generic table.
func (r *Registry) Provider(tag string) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.providers[normalize(tag)]; ok {
		return p
	}
	return r.fallback
}

// Known reports whether the tag resolves to a non-fallback provider.
func (r *Registry) Known(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[normalize(tag)]
	return ok
}

// Tags returns all registered language tags, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.providers))
	for tag := range r.providers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
