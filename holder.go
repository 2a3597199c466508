// FILE: lixenwraith/appconfig/holder.go
package appconfig

import (
	"context"
	"sync"
)

// Holder owns the application's current container. Each Configure replaces
// the container wholesale; accessors forward to whichever container is current.
// Create one per application during startup and pass it where needed.
type Holder struct {
	mu      sync.RWMutex
	current *Container
	opts    []Option
}

// NewHolder returns a holder whose current container is empty and unconfigured.
// opts are applied to every container the holder creates.
func NewHolder(opts ...Option) *Holder {
	return &Holder{
		current: New(opts...),
		opts:    opts,
	}
}

// Configure runs a fresh configuration pass and makes its container current,
// also when setup returns an error. It is rejected with ErrValidationInProgress
// while the current container is being validated.
func (h *Holder) Configure(setup SetupFunc) error {
	if h.Current().running.Load() {
		return ErrValidationInProgress
	}

	c, err := Configure(setup, h.opts...)
	h.swap(c)
	return err
}

// Current returns the container that accessors forward to.
func (h *Holder) Current() *Container {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// swap installs c as the current container and returns the previous one
func (h *Holder) swap(c *Container) *Container {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.current
	h.current = c
	return prev
}

// Get forwards to the current container.
func (h *Holder) Get(name string) (any, error) {
	return h.Current().Get(name)
}

// Set forwards to the current container.
func (h *Holder) Set(name string, value any) error {
	return h.Current().Set(name, value)
}

// Valid forwards to the current container.
func (h *Holder) Valid() error {
	return h.Current().Valid()
}

// Ready forwards to the current container.
func (h *Holder) Ready() error {
	return h.Current().Ready()
}

// ReadyContext forwards to the current container.
func (h *Holder) ReadyContext(ctx context.Context) error {
	return h.Current().ReadyContext(ctx)
}
