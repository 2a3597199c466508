// FILE: lixenwraith/appconfig/configure.go
package appconfig

// SetupFunc declares parameters and callbacks on a fresh container.
type SetupFunc func(c *Container) error

// Configure starts a configuration pass: it creates a new container, marks it
// configuring, runs setup and clears configuring again, also when setup fails.
// The returned container is never merged with a previous one.
func Configure(setup SetupFunc, opts ...Option) (*Container, error) {
	c := New(opts...)
	c.setConfiguring(true)
	defer c.setConfiguring(false)

	if setup == nil {
		return c, nil
	}
	if err := setup(c); err != nil {
		return c, err
	}
	return c, nil
}
