// File: lixenwraith/appconfig/doc.go

// Package appconfig declares named configuration parameters, gates when they
// may be read, enforces write locks and validates them in two passes around
// after-validation callbacks that can derive values.
//
// Features:
//   - Ordered parameter declarations with required and on_set lock options
//   - Phase-gated reads: available while configuring, validating or once readied
//   - Two-pass validation: requiredness is checked before and after callbacks
//   - Holder for an application-owned "current configuration" with wholesale replacement
//   - Value loading from CLI arguments, environment, dotenv files and TOML/JSON/YAML files
//   - Declarations from HCL schema files or tagged structs
//   - Typed reads, struct scanning, atomic TOML save
//   - File watching with debounced reconfiguration
//
// Quick Start:
//
//	c, err := appconfig.Configure(func(c *appconfig.Container) error {
//	    if err := c.Parameter("fooz"); err != nil {
//	        return err
//	    }
//	    if err := c.Parameter("doggyz", appconfig.Required()); err != nil {
//	        return err
//	    }
//	    c.AfterValidation(func(c *appconfig.Container) error {
//	        dog, err := c.Get("doggyz")
//	        if err != nil {
//	            return err
//	        }
//	        return c.Set("fooz", dog == "poodle")
//	    })
//	    return nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c.Set("doggyz", "poodle")
//	if err := c.Ready(); err != nil {
//	    log.Fatal(err) // *appconfig.MissingConfigurationError when a required value is nil
//	}
//	fooz, _ := c.Get("fooz")
//
// Lifecycle:
//  1. Configure creates a fresh container and runs setup with reads allowed
//  2. Values are written with Set (or a Loader); reads are refused with ErrReadNotAvailable
//  3. Valid checks required values, runs callbacks in order, checks again
//  4. Ready is Valid plus the readied flag, after which reads stay available
//
// Writes are never refused because of phase. A parameter declared with
// Lock(LockOnSet) accepts exactly one successful write.
//
// Thread Safety:
// Each call locks the container for its own duration. Callbacks run without
// the container lock held, so they may call Get and Set. Validation runs on one
// container are serialised; a nested run returns ErrValidationInProgress.
package appconfig
