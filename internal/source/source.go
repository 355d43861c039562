package source

import (
	"context"
	"fmt"

	"RegRadar/internal/domain"
)

// Request carries the temporal parameters bounding one fetch.
type Request struct {
	DaysBack int
	PageSize int
	Keywords []string
}

// Source captures a single upstream adapter (Regulations.gov, NYS, NYC).
// Fetch returns raw items in the upstream's own shape; pairing them with the
// matching normalizer is the orchestrator's job.
type Source interface {
	Name() string
	Level() domain.Level
	Endpoint() string
	Enabled() bool
	Fetch(ctx context.Context, req Request) ([]map[string]any, error)
}

// Registry keeps adapters in registration order so runs are deterministic.
type Registry struct {
	order   []string
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces an adapter implementation.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	if _, exists := r.sources[src.Name()]; !exists {
		r.order = append(r.order, src.Name())
	}
	r.sources[src.Name()] = src
}

// Resolve returns an adapter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}

// Names lists registered adapters in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
