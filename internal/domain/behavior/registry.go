package behavior

import "fmt"

// Registry maps behavior names to their single shared instance. It is
// constructed explicitly by setup code and handed to the scheduler; no
// process-wide registration, so tests stay hermetic.
type Registry struct {
	order  []Behavior
	byName map[string]Behavior
}

// NewRegistry creates a registry from the given behaviors. Registration
// order is preserved and used as the tie-break when priorities are equal.
func NewRegistry(behaviors ...Behavior) (*Registry, error) {
	r := &Registry{byName: make(map[string]Behavior, len(behaviors))}
	for _, b := range behaviors {
		if b.Name() == "" {
			return nil, fmt.Errorf("behavior with empty name")
		}
		if _, exists := r.byName[b.Name()]; exists {
			return nil, fmt.Errorf("behavior %q registered twice", b.Name())
		}
		r.byName[b.Name()] = b
		r.order = append(r.order, b)
	}
	return r, nil
}

// Get returns the behavior registered under name
func (r *Registry) Get(name string) (Behavior, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// All returns the behaviors in registration order
func (r *Registry) All() []Behavior {
	return r.order
}

// Len returns the number of registered behaviors
func (r *Registry) Len() int {
	return len(r.order)
}
