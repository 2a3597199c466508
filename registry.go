// FILE: lixenwraith/appconfig/registry.go
package appconfig

import "fmt"

// registry holds parameters in registration order with a name index.
// It does no locking; Container serialises access.
type registry struct {
	params []*parameter
	index  map[string]int
}

func newRegistry() *registry {
	return &registry{
		index: make(map[string]int),
	}
}

// register appends a new parameter or fails if the name is taken.
// Any string is a valid name; table-shaped output checks names separately.
func (r *registry) register(name string, opts parameterOptions) error {
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateParameter, name)
	}

	r.index[name] = len(r.params)
	r.params = append(r.params, &parameter{
		name:     name,
		required: opts.required,
		lock:     opts.lock,
	})
	return nil
}

func (r *registry) lookup(name string) (*parameter, error) {
	i, exists := r.index[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrParameterNotDeclared, name)
	}
	return r.params[i], nil
}

// write applies the lock policy before storing value
func (r *registry) write(name string, value any) error {
	p, err := r.lookup(name)
	if err != nil {
		return err
	}

	switch p.lock {
	case LockNone:
	case LockOnSet:
		if p.set {
			return fmt.Errorf("%w: %s", ErrLockedParameter, name)
		}
	default:
		return fmt.Errorf("%w: %q on parameter %s", ErrInvalidLockOption, string(p.lock), name)
	}

	p.value = value
	p.set = true
	return nil
}

func (r *registry) read(name string) (any, error) {
	p, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return p.value, nil
}

// missing returns required parameters whose value is nil, in registration order.
// Typed nils (nil pointer, map, slice and so on) count as nil.
func (r *registry) missing() []string {
	var names []string
	for _, p := range r.params {
		if p.required && isNil(p.value) {
			names = append(names, p.name)
		}
	}
	return names
}

func (r *registry) names() []string {
	names := make([]string, len(r.params))
	for i, p := range r.params {
		names[i] = p.name
	}
	return names
}
