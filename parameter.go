// FILE: lixenwraith/appconfig/parameter.go
package appconfig

// LockPolicy controls whether a parameter may be reassigned after its first successful write.
type LockPolicy string

const (
	// LockNone allows unrestricted writes (default)
	LockNone LockPolicy = ""
	// LockOnSet allows exactly one successful write
	LockOnSet LockPolicy = "on_set"
)

// Valid reports whether the policy is one the registry knows how to enforce.
func (p LockPolicy) Valid() bool {
	return p == LockNone || p == LockOnSet
}

func (p LockPolicy) String() string {
	if p == LockNone {
		return "none"
	}
	return string(p)
}

// parameter is a single named configuration slot
type parameter struct {
	name     string
	required bool
	lock     LockPolicy
	value    any
	set      bool // any write has succeeded
}

// parameterOptions collects declaration options before a parameter is created
type parameterOptions struct {
	required bool
	lock     LockPolicy
}

// ParameterOption configures a parameter at declaration time.
type ParameterOption func(*parameterOptions)

// Required marks the parameter as required for validation to succeed.
func Required() ParameterOption {
	return WithRequired(true)
}

// WithRequired sets requiredness explicitly.
func WithRequired(required bool) ParameterOption {
	return func(o *parameterOptions) {
		o.required = required
	}
}

// Lock sets the parameter's lock policy. Unknown policies are accepted here
// and rejected on every write attempt.
func Lock(policy LockPolicy) ParameterOption {
	return func(o *parameterOptions) {
		o.lock = policy
	}
}
