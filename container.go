// FILE: lixenwraith/appconfig/container.go
package appconfig

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Container holds one configuration pass: declared parameters, their values,
// after-validation callbacks and the lifecycle phase flags.
type Container struct {
	id        string
	reg       *registry
	callbacks callbacks
	phase     phase
	logger    *slog.Logger

	mutex   sync.RWMutex // Protects reg, callbacks and phase
	running atomic.Bool  // Set for the duration of a validation run
}

// Option configures a Container at construction.
type Option func(*Container)

// WithLogger sets the logger used for lifecycle events. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty container in no phase. Reads are unavailable until
// the container is configuring, validating or readied.
func New(opts ...Option) *Container {
	c := &Container{
		id:     uuid.NewString(),
		reg:    newRegistry(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("container_id", c.id))
	return c
}

// ID returns the unique generation identifier of this container.
func (c *Container) ID() string {
	return c.id
}

// Parameter declares a named parameter. Declaring the same name twice fails
// with ErrDuplicateParameter regardless of options.
func (c *Container) Parameter(name string, opts ...ParameterOption) error {
	var o parameterOptions
	for _, opt := range opts {
		opt(&o)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.reg.register(name, o); err != nil {
		return err
	}
	c.logger.Debug("parameter declared",
		slog.String("name", name),
		slog.Bool("required", o.required),
		slog.String("lock", o.lock.String()),
	)
	return nil
}

// Get returns the current value of a parameter, which may be nil.
// Outside the configuring, validating and readied phases it returns ErrReadNotAvailable.
func (c *Container) Get(name string) (any, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, err := c.reg.read(name)
	if err != nil {
		return nil, err
	}
	if !c.phase.canRead() {
		return nil, fmt.Errorf("%w: %s", ErrReadNotAvailable, name)
	}
	return value, nil
}

// Set assigns a value (nil included) to a declared parameter in any phase,
// subject to its lock policy.
func (c *Container) Set(name string, value any) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := c.reg.write(name, value); err != nil {
		return err
	}
	c.logger.Debug("parameter set", slog.String("name", name))
	return nil
}

// Configuring reports whether the container is inside its setup function.
func (c *Container) Configuring() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.phase.configuring
}

// Validating reports whether a validation run is in progress.
func (c *Container) Validating() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.phase.validating
}

// Readied reports whether Ready has succeeded at least once.
func (c *Container) Readied() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.phase.readied
}

// Validated reports whether Valid has succeeded at least once.
func (c *Container) Validated() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.phase.validated
}

// Readable reports whether Get is currently permitted.
func (c *Container) Readable() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.phase.canRead()
}

// Names returns declared parameter names in registration order.
func (c *Container) Names() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.reg.names()
}

// IsDeclared reports whether name has been declared.
func (c *Container) IsDeclared(name string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, exists := c.reg.index[name]
	return exists
}

// IsSet reports whether any write to name has succeeded.
func (c *Container) IsSet(name string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	p, err := c.reg.lookup(name)
	return err == nil && p.set
}

// IsRequired reports whether name was declared as required.
func (c *Container) IsRequired(name string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	p, err := c.reg.lookup(name)
	return err == nil && p.required
}

// LockOf returns the lock policy of name and whether it is declared.
func (c *Container) LockOf(name string) (LockPolicy, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	p, err := c.reg.lookup(name)
	if err != nil {
		return LockNone, false
	}
	return p.lock, true
}

// setConfiguring toggles the configuring phase
func (c *Container) setConfiguring(on bool) {
	c.mutex.Lock()
	c.phase.configuring = on
	c.mutex.Unlock()
}
