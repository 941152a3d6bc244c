package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownEngine is returned when no adapter is registered under a name.
var ErrUnknownEngine = errors.New("unknown engine")

// BackendSupporter is implemented by adapters that answer to more backend
// names than their own or that are tied to particular drivers.
type BackendSupporter interface {
	// Aliases are extra backend names, e.g. "mariadb" for MySQL.
	Aliases() []string

	// Drivers lists the drivers the adapter was written for. Empty means
	// any driver.
	Drivers() []string
}

// Registry maps engine identifiers to adapters. It is built once and only
// read afterwards, so it is safe for concurrent use.
type Registry struct {
	specs map[Name]Spec
	order []Name
}

// NewRegistry registers specs in the given order. Duplicate names are an
// error.
func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{specs: make(map[Name]Spec, len(specs))}
	for _, s := range specs {
		name := normalize(string(s.Name()))
		if _, dup := r.specs[name]; dup {
			return nil, fmt.Errorf("register %q: duplicate engine", name)
		}
		r.specs[name] = s
		r.order = append(r.order, name)
	}
	return r, nil
}

// Get returns the adapter for name (case-insensitive). name is an engine
// identifier or a connection URL scheme of the form backend[+driver], and
// may be a whole URL. An adapter supporting both backend and driver wins;
// failing that, the first one supporting the backend alone.
func (r *Registry) Get(name string) (Spec, error) {
	backend, driver := splitBackend(name)

	if s, ok := r.specs[backend]; ok && driver == "" {
		return s, nil
	}
	if driver != "" {
		for _, n := range r.order {
			if supportsBackend(r.specs[n], backend, driver) {
				return r.specs[n], nil
			}
		}
	}
	for _, n := range r.order {
		if supportsBackend(r.specs[n], backend, "") {
			return r.specs[n], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

// Resolve is Get with the generic Base adapter in place of an error.
func (r *Registry) Resolve(name string) Spec {
	s, err := r.Get(name)
	if err != nil {
		return Base{}
	}
	return s
}

// Specs returns the adapters in registration order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.specs[n])
	}
	return out
}

// Only returns a registry restricted to names. An empty list keeps every
// engine.
func (r *Registry) Only(names []string) (*Registry, error) {
	if len(names) == 0 {
		return r, nil
	}
	specs := make([]Spec, 0, len(names))
	for _, n := range names {
		s, err := r.Get(n)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return NewRegistry(specs...)
}

func normalize(name string) Name {
	return Name(strings.ToLower(strings.TrimSpace(name)))
}

func splitBackend(name string) (backend Name, driver string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[:i]
	}
	b, d, _ := strings.Cut(name, "+")
	return Name(b), d
}

func supportsBackend(s Spec, backend Name, driver string) bool {
	bs, ok := s.(BackendSupporter)
	if normalize(string(s.Name())) != backend {
		if !ok || !slices.Contains(bs.Aliases(), string(backend)) {
			return false
		}
	}
	if driver == "" || !ok || len(bs.Drivers()) == 0 {
		return true
	}
	return slices.Contains(bs.Drivers(), driver)
}
