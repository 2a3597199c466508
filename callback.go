// FILE: lixenwraith/appconfig/callback.go
package appconfig

// CallbackFunc runs after the first validation pass. It receives the same
// container being validated and may read or write any parameter. Returning
// an error stops the remaining callbacks and fails validation with that error.
type CallbackFunc func(c *Container) error

// callbacks is the ordered list of after-validation hooks
type callbacks []CallbackFunc

// invokeAll runs every callback in registration order, stopping at the first error.
// The error is returned unwrapped.
func (cbs callbacks) invokeAll(c *Container) error {
	for _, fn := range cbs {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// AfterValidation registers fn to run during Valid, after the first
// requiredness check and before the second. A nil fn is ignored.
func (c *Container) AfterValidation(fn CallbackFunc) {
	if fn == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.callbacks = append(c.callbacks, fn)
}
