// Package postprocessors builds the chunkers that turn documents into chunks.
package postprocessors

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// BuilderFunc creates a Chunker from generic config and a tokenizer.
// Config values come from the [chunking] table of config.toml.
type BuilderFunc func(cfg map[string]any, tokenizer driven.Tokenizer) (driven.Chunker, error)

// Registry maps chunker names to their builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a builder under name, replacing any previous one.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a chunker by name.
func (r *Registry) Build(name string, cfg map[string]any, tokenizer driven.Tokenizer) (driven.Chunker, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown chunker %q: %w", name, domain.ErrUnsupportedType)
	}
	return builder(cfg, tokenizer)
}

// Has returns true if a builder is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
