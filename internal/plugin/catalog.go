package plugin

import "fmt"

// Catalog is the fixed, ordered set of extension points a host exposes.
// It is built once at startup and read-only afterwards.
type Catalog struct {
	points []Extension
	index  map[string]int
}

// NewCatalog builds a catalog in declaration order. Empty or duplicate point
// names are programming errors and panic.
func NewCatalog(points ...Extension) *Catalog {
	c := &Catalog{
		points: make([]Extension, 0, len(points)),
		index:  make(map[string]int, len(points)),
	}
	for _, point := range points {
		name := point.Name()
		if name == "" {
			panic("plugin: extension point with empty name")
		}
		if _, exists := c.index[name]; exists {
			panic(fmt.Sprintf("plugin: extension point %q declared twice", name))
		}
		c.index[name] = len(c.points)
		c.points = append(c.points, point)
	}
	return c
}

// Lookup returns the extension point registered under name.
func (c *Catalog) Lookup(name string) (Extension, bool) {
	if c == nil {
		return nil, false
	}
	idx, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.points[idx], true
}

// Has reports whether name is a catalog point.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Points returns the extension points in declaration order.
func (c *Catalog) Points() []Extension {
	if c == nil {
		return nil
	}
	return append([]Extension(nil), c.points...)
}

// Names returns the point names in declaration order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.points))
	for i, point := range c.points {
		names[i] = point.Name()
	}
	return names
}

// Len returns the number of points.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.points)
}
