// FILE: lixenwraith/appconfig/error.go
package appconfig

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateParameter is returned when a name is declared twice on one container.
	ErrDuplicateParameter = errors.New("duplicate parameter definition")

	// ErrMissingConfiguration matches every *MissingConfigurationError via errors.Is.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrLockedParameter is returned on a write to an on_set parameter that already holds a value.
	ErrLockedParameter = errors.New("cannot modify locked parameter")

	// ErrInvalidLockOption is returned on every write to a parameter whose lock policy is unknown.
	ErrInvalidLockOption = errors.New("invalid lock option")

	// ErrReadNotAvailable is returned when a read is attempted outside the
	// configuring, validating and readied phases. It is never returned for a
	// parameter that is readable but holds nil.
	ErrReadNotAvailable = errors.New("parameter read not available before ready")

	ErrParameterNotDeclared = errors.New("parameter not declared")
	ErrInvalidParameterName = errors.New("invalid parameter key")
	ErrValidationInProgress = errors.New("validation in progress")

	// ErrNameConflict is returned by Dump, Save and Scan when one set parameter's
	// name is a dotted prefix of another's, so both cannot share one table.
	ErrNameConflict = errors.New("parameter name conflicts with table")

	// Source errors
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrCLIParse       = errors.New("failed to parse command-line arguments")
	ErrValueSize      = errors.New("value size exceeds maximum")
	ErrSchema         = errors.New("invalid parameter schema")
)

// MaxValueSize bounds a single environment or dotenv value in bytes.
const MaxValueSize = 1024 * 1024

// MissingConfigurationError lists required parameters that were nil when a
// validation pass ran, in registration order.
type MissingConfigurationError struct {
	Names []string
}

func (e *MissingConfigurationError) Error() string {
	return "All required configurations have not been set. Missing configurations: " + strings.Join(e.Names, ",")
}

// Is reports ErrMissingConfiguration as a match.
func (e *MissingConfigurationError) Is(target error) bool {
	return target == ErrMissingConfiguration
}
