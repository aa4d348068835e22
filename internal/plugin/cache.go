package plugin

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Cache holds composed pipelines keyed by plugin-set fingerprint so repeated
// runs over an unchanged plugin set skip composition. Entries are evicted
// oldest first once the cache is full.
type Cache struct {
	mu      sync.RWMutex
	max     int
	entries map[string]Pipelines
	keys    []string
}

// NewCache creates a cache holding at most max entries. A non-positive max
// yields a cache that never stores anything.
func NewCache(max int) *Cache {
	return &Cache{
		max:     max,
		entries: make(map[string]Pipelines),
	}
}

// Get returns the pipelines stored under key.
func (c *Cache) Get(key string) (Pipelines, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	pipelines, ok := c.entries[key]
	return pipelines, ok
}

// Put stores pipelines under key, evicting the oldest entry when full.
func (c *Cache) Put(key string, pipelines Pipelines) {
	if c == nil || c.max <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = pipelines
		return
	}
	for len(c.keys) >= c.max {
		oldest := c.keys[0]
		c.keys = c.keys[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = pipelines
	c.keys = append(c.keys, key)
}

// Len returns the number of cached plugin sets.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Pipelines)
	c.keys = nil
}

// Fingerprint identifies an ordered plugin set by content: each plugin's
// name, key, predecessors and contributed points together with the code
// address of every implementation. Two descriptor values with equal content
// share a fingerprint.
//
// Closures created from the same function literal share a code address, so
// a fingerprint only identifies a plugin set whose plugins all carry a Key.
// See Cacheable.
func Fingerprint(ordered []*Plugin) string {
	var b strings.Builder
	for _, p := range ordered {
		if p == nil {
			continue
		}
		fmt.Fprintf(&b, "%s#%s<%s>{", p.Name, p.Key, strings.Join(p.After, ","))
		for _, name := range p.PlugNames() {
			fmt.Fprintf(&b, "%s=%s;", name, implIdentity(p.Plugs[name]))
		}
		b.WriteString("}|")
	}
	return b.String()
}

// Cacheable reports whether every plugin in ordered sets Key. Without a key
// two closures from one factory are indistinguishable, so such sets are
// composed on every run.
func Cacheable(ordered []*Plugin) bool {
	for _, p := range ordered {
		if p != nil && p.Key == "" {
			return false
		}
	}
	return true
}

func implIdentity(impl any) string {
	if impl == nil {
		return "nil"
	}
	value := reflect.ValueOf(impl)
	if value.Kind() == reflect.Func {
		if value.IsNil() {
			return "nil"
		}
		return fmt.Sprintf("%s@%x", value.Type(), value.Pointer())
	}
	return fmt.Sprintf("%T", impl)
}
