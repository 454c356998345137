package drawstack

import (
	"errors"
	"fmt"
	"io"
)

// Registry owns node lifetimes: every registered node is closed once, in
// reverse registration order.
type Registry struct {
	names   map[string]bool
	order   []string
	closers []io.Closer
}

func NewRegistry() *Registry {
	return &Registry{names: map[string]bool{}}
}

// Register records n under name and hands it back for chaining.
func Register[T io.Closer](r *Registry, name string, n T) (T, error) {
	if r.names[name] {
		return n, fmt.Errorf("drawstack: node %q registered twice", name)
	}
	r.names[name] = true
	r.order = append(r.order, name)
	r.closers = append(r.closers, n)
	return n, nil
}

func (r *Registry) Len() int { return len(r.closers) }

// Close closes every node and empties the registry.
func (r *Registry) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", r.order[i], err))
		}
	}
	r.closers, r.order = nil, nil
	clear(r.names)
	return errors.Join(errs...)
}
