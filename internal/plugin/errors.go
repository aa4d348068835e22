package plugin

import (
	"fmt"
	"sort"
	"strings"
)

// ErrPluginNotFound is returned when no plugin factory is registered under a name.
type ErrPluginNotFound struct {
	Name      string
	Available []string
}

func (e ErrPluginNotFound) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("plugin '%s' not found\nHint: ensure the plugin package is imported so it can register itself", e.Name)
	}
	available := append([]string(nil), e.Available...)
	sort.Strings(available)
	return fmt.Sprintf(
		"plugin '%s' not found\nHint: available plugins are %s",
		e.Name,
		strings.Join(available, ", "),
	)
}

// ErrDuplicatePlugin is returned when two active plugins share a name.
type ErrDuplicatePlugin struct {
	Name string
}

func (e ErrDuplicatePlugin) Error() string {
	return fmt.Sprintf("plugin '%s' listed more than once\nHint: plugin names must be unique within a plugin set", e.Name)
}
