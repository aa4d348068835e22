package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures table document and descriptor validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigurationError reports a plugin contribution the engine cannot place:
// an extension point missing from the catalog, or an implementation whose
// signature does not match the point it was contributed to.
type ConfigurationError struct {
	Plugin string
	Plug   string
	Reason string
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(plugin, plug, reason string) error {
	return &ConfigurationError{Plugin: plugin, Plug: plug, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	reason := e.Reason
	if reason == "" {
		reason = "unknown plug"
	}
	return fmt.Sprintf("configuration error: %s %q found in plugin %q", reason, e.Plug, e.Plugin)
}

// ExecutionError wraps a failure raised by a plugin implementation while a
// table stage was invoking a composed pipeline.
type ExecutionError struct {
	Stage string
	Point string
	Err   error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(stage, point string, err error) error {
	return &ExecutionError{Stage: stage, Point: point, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Point != "" {
		return fmt.Sprintf("execution error in stage %s (%s): %v", e.Stage, e.Point, e.Err)
	}
	if e.Stage != "" {
		return fmt.Sprintf("execution error in stage %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PluginError indicates issues within plugin registration or construction.
type PluginError struct {
	Plugin  string
	Message string
	Err     error
}

// NewPluginError constructs a PluginError for the given plugin name.
func NewPluginError(plugin string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &PluginError{Plugin: plugin, Message: message, Err: err}
}

func (e *PluginError) Error() string {
	if e == nil {
		return ""
	}
	if e.Plugin != "" {
		return fmt.Sprintf("plugin error [%s]: %s", e.Plugin, e.Message)
	}
	return fmt.Sprintf("plugin error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *PluginError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
