// Package plugins holds the named plugin factories a table document can
// enable. Plugin packages register themselves from init and the CLI imports
// them for their side effect.
package plugins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/tabular/internal/plugin"
	tabularerrors "github.com/alexisbeaulieu97/tabular/pkg/errors"
)

// Factory builds a plugin descriptor from its document options.
type Factory func(options Options) (*plugin.Plugin, error)

// Registration describes one registered factory.
type Registration struct {
	Name        string
	Description string
	Factory     Factory
}

// Registry maps plugin names to factories.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Registration)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry plugin packages register into.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory under name to the default registry.
func Register(name, description string, factory Factory) error {
	return defaultRegistry.Register(name, description, factory)
}

// Register adds a factory under name.
func (r *Registry) Register(name, description string, factory Factory) error {
	if name == "" {
		return tabularerrors.NewPluginError(name, fmt.Errorf("plugin name is empty"))
	}
	if factory == nil {
		return tabularerrors.NewPluginError(name, fmt.Errorf("factory is nil"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return tabularerrors.NewPluginError(name, fmt.Errorf("plugin already registered"))
	}
	r.entries[name] = Registration{Name: name, Description: description, Factory: factory}
	return nil
}

// Lookup returns the registration for name.
func (r *Registry) Lookup(name string) (Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.entries[name]
	if !ok {
		return Registration{}, plugin.ErrPluginNotFound{Name: name, Available: r.namesLocked()}
	}
	return reg, nil
}

// Build constructs the named plugin from options. The factory must return a
// descriptor carrying the registered name.
func (r *Registry) Build(name string, options Options) (*plugin.Plugin, error) {
	reg, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	p, err := reg.Factory(options)
	if err != nil {
		return nil, tabularerrors.NewPluginError(name, err)
	}
	if p == nil {
		return nil, tabularerrors.NewPluginError(name, fmt.Errorf("factory returned no plugin"))
	}
	if p.Name != name {
		return nil, tabularerrors.NewPluginError(name, fmt.Errorf("factory returned plugin %q", p.Name))
	}
	return p, nil
}

// Registrations lists every registration sorted by name.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration, 0, len(r.entries))
	for _, reg := range r.entries {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names lists the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
