package plugin

import (
	"slices"
	"sort"
)

// Plugs maps extension point names to implementations.
type Plugs map[string]any

// Contribution pairs an implementation with the point it targets.
type Contribution struct {
	Point string
	Impl  any
}

// Plugin is a named, orderable bundle of extension point implementations.
//
// After lists plugins that must be composed before this one. Names that do
// not resolve to an active plugin are ignored. A Plugin must not be modified
// after it has been handed to the engine.
type Plugin struct {
	Name  string   `validate:"required"`
	After []string `validate:"dive,required"`
	Plugs Plugs
	// Key distinguishes descriptors that share a name and code but close over
	// different state (for example two configurations of the same factory).
	// Only plugin sets whose plugins all set Key are served from the cache.
	Key string
}

// New builds a Plugin from typed contributions.
func New(name string, after []string, contributions ...Contribution) *Plugin {
	plugs := make(Plugs, len(contributions))
	for _, c := range contributions {
		plugs[c.Point] = c.Impl
	}
	return &Plugin{
		Name:  name,
		After: append([]string(nil), after...),
		Plugs: plugs,
	}
}

// Contributes reports whether the plugin supplies an implementation for point.
func (p *Plugin) Contributes(point string) bool {
	if p == nil {
		return false
	}
	impl, ok := p.Plugs[point]
	return ok && impl != nil
}

// PlugNames returns the contributed point names, sorted.
func (p *Plugin) PlugNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.Plugs))
	for name := range p.Plugs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Plugin) dependsOn(name string) bool {
	return slices.Contains(p.After, name)
}
