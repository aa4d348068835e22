package plugin

import (
	"fmt"
	"reflect"
)

// Kind is the composition kind of an extension point.
//
// Both kinds compose the same way: implementations are chained in plugin
// order and each receives the previous one's output. The distinction is
// declared intent. Reduce points accumulate a value (options, column lists,
// prop objects); Decorate points enrich an existing structure (a row, a
// header, the whole instance).
type Kind int

const (
	// Reduce folds contributions over a single accumulating value.
	Reduce Kind = iota
	// Decorate threads an existing structure through every contribution.
	Decorate
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Reduce:
		return "reduce"
	case Decorate:
		return "decorate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Hook is the canonical implementation shape of a Point[T, M]: it receives
// the value produced so far plus the shared meta and returns the next value.
type Hook[T, M any] func(value T, meta M) (T, error)

// Extension is the type-erased view of a Point held by a Catalog.
type Extension interface {
	Name() string
	Kind() Kind
	// Accepts reports whether impl has a signature this point can compose.
	Accepts(impl any) bool
	// Compose chains impls in order into a single Hook. Entries the point
	// does not accept are skipped.
	Compose(impls []any) any
	// Signature describes the canonical Go signature of an implementation.
	Signature() string
}

// Point is a named, typed extension point. T is the threaded value and M the
// meta passed unchanged to every implementation.
type Point[T, M any] struct {
	name string
	kind Kind
}

// NewReduce declares a reduce-kind point.
func NewReduce[T, M any](name string) Point[T, M] {
	return Point[T, M]{name: name, kind: Reduce}
}

// NewDecorate declares a decorate-kind point.
func NewDecorate[T, M any](name string) Point[T, M] {
	return Point[T, M]{name: name, kind: Decorate}
}

// Name returns the point name used as the key in plugin contributions.
func (p Point[T, M]) Name() string { return p.name }

// Kind returns the point's composition kind.
func (p Point[T, M]) Kind() Kind { return p.kind }

// Signature returns the canonical implementation signature.
func (p Point[T, M]) Signature() string {
	value := reflect.TypeOf((*T)(nil)).Elem()
	meta := reflect.TypeOf((*M)(nil)).Elem()
	return fmt.Sprintf("func(%s, %s) (%s, error)", value, meta, value)
}

// Accepts reports whether impl is a non-nil implementation of this point.
func (p Point[T, M]) Accepts(impl any) bool {
	_, ok := p.hook(impl)
	return ok
}

// Compose chains the accepted implementations in order.
func (p Point[T, M]) Compose(impls []any) any {
	hooks := make([]Hook[T, M], 0, len(impls))
	for _, impl := range impls {
		if hook, ok := p.hook(impl); ok {
			hooks = append(hooks, hook)
		}
	}
	return chain(hooks)
}

// From returns this point's composed hook from pipelines, or identity when
// the map has no usable entry for it.
func (p Point[T, M]) From(pipelines Pipelines) Hook[T, M] {
	if hook, ok := pipelines[p.name].(Hook[T, M]); ok && hook != nil {
		return hook
	}
	return identity[T, M]
}

// Run invokes the composed pipeline for this point.
func (p Point[T, M]) Run(pipelines Pipelines, value T, meta M) (T, error) {
	return p.From(pipelines)(value, meta)
}

// Plug builds a contribution of fn to this point.
func (p Point[T, M]) Plug(fn Hook[T, M]) Contribution {
	return Contribution{Point: p.name, Impl: fn}
}

// PlugFunc builds a contribution from an implementation that cannot fail.
func (p Point[T, M]) PlugFunc(fn func(T, M) T) Contribution {
	return Contribution{Point: p.name, Impl: fn}
}

func (p Point[T, M]) hook(impl any) (Hook[T, M], bool) {
	switch fn := impl.(type) {
	case Hook[T, M]:
		return fn, fn != nil
	case func(T, M) (T, error):
		return fn, fn != nil
	case func(T, M) T:
		if fn == nil {
			return nil, false
		}
		return func(value T, meta M) (T, error) {
			return fn(value, meta), nil
		}, true
	default:
		return nil, false
	}
}

func chain[T, M any](hooks []Hook[T, M]) Hook[T, M] {
	if len(hooks) == 0 {
		return identity[T, M]
	}
	if len(hooks) == 1 {
		return hooks[0]
	}
	return func(value T, meta M) (T, error) {
		for _, hook := range hooks {
			next, err := hook(value, meta)
			if err != nil {
				var zero T
				return zero, err
			}
			value = next
		}
		return value, nil
	}
}

func identity[T, M any](value T, _ M) (T, error) {
	return value, nil
}
