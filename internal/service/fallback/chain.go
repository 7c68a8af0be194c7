// Package fallback turns the degrade-gracefully policy into an explicit,
// testable pipeline: an ordered list of sources is tried until one yields a
// usable value, and a terminal default guarantees the chain never comes back
// empty-handed.
package fallback

import "context"

// Source is one tier of a fallback chain. Fetch returns a value or an error;
// an error (or a value the chain's accept test rejects) moves the chain on
// to the next tier.
type Source[T any] struct {
	Name  string
	Fetch func(ctx context.Context) (T, error)
}

// Outcome reports which tier served the value.
type Outcome[T any] struct {
	Value T
	// Tier is the Name of the source that produced Value, or "default".
	Tier string
	// Errors holds one entry per tier that failed before Value was produced.
	Errors []error
}

// Chain tries sources in order and keeps the first accepted value.
type Chain[T any] struct {
	sources []Source[T]
	accept  func(T) bool
}

// NewChain builds a chain over the given sources. accept decides whether a
// tier's value is usable; nil accepts any value returned without error.
func NewChain[T any](accept func(T) bool, sources ...Source[T]) *Chain[T] {
	return &Chain[T]{sources: sources, accept: accept}
}

// Run tries each tier in order. If every tier fails, def() supplies the
// terminal value and Tier is "default".
func (c *Chain[T]) Run(ctx context.Context, def func() T) Outcome[T] {
	var errs []error
	for _, s := range c.sources {
		v, err := s.Fetch(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if c.accept != nil && !c.accept(v) {
			continue
		}
		return Outcome[T]{Value: v, Tier: s.Name, Errors: errs}
	}
	return Outcome[T]{Value: def(), Tier: "default", Errors: errs}
}
