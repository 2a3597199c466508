// File: lixenwraith/appconfig/convenience.go
package appconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Quick runs a configuration pass, loads values with the default precedence
// (CLI > env > dotenv > file) from os.Args[1:], the environment and
// configFile, then calls Ready. A missing configFile is not an error.
func Quick(setup SetupFunc, envPrefix, configFile string, opts ...Option) (*Container, error) {
	c, err := Configure(setup, opts...)
	if err != nil {
		return nil, err
	}

	loader := NewLoader().WithEnvPrefix(envPrefix).WithFile(configFile)
	if err := loader.Load(c); err != nil && !onlyNotFound(err) {
		return nil, err
	}

	if err := c.Ready(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustQuick is like Quick but panics on error
func MustQuick(setup SetupFunc, envPrefix, configFile string, opts ...Option) *Container {
	c, err := Quick(setup, envPrefix, configFile, opts...)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return c
}

// onlyNotFound reports whether err consists solely of ErrConfigNotFound errors
func onlyNotFound(err error) bool {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !onlyNotFound(e) {
				return false
			}
		}
		return true
	}
	return errors.Is(err, ErrConfigNotFound)
}

// Snapshot returns the current value of every declared parameter, nil
// values included. Use Names for registration order. Reads are gated like Get.
func (c *Container) Snapshot() (map[string]any, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.phase.canRead() {
		return nil, ErrReadNotAvailable
	}
	values := make(map[string]any, len(c.reg.params))
	for _, p := range c.reg.params {
		values[p.name] = p.value
	}
	return values, nil
}

// Debug returns a formatted listing of phase flags and parameters in
// registration order. Values are shown only while reads are permitted.
func (c *Container) Debug() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Container %s\n", c.id)
	fmt.Fprintf(&b, "Phase: configuring=%t validating=%t validated=%t readied=%t\n",
		c.phase.configuring, c.phase.validating, c.phase.validated, c.phase.readied)
	b.WriteString("Parameters:\n")

	readable := c.phase.canRead()
	for _, p := range c.reg.params {
		fmt.Fprintf(&b, "  %s:\n", p.name)
		fmt.Fprintf(&b, "    Required: %t\n", p.required)
		fmt.Fprintf(&b, "    Lock: %s\n", p.lock)
		fmt.Fprintf(&b, "    Set: %t\n", p.set)
		if readable {
			fmt.Fprintf(&b, "    Value: %v\n", p.value)
		}
	}
	return b.String()
}
