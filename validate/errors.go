package validate

import "errors"

// ErrInvalid is a rule violation. Its text is printed to the operator verbatim.
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }

// ErrMissingDependency means the runner has no YAML decoder to work with.
var ErrMissingDependency = errors.New("Missing dependency: YAML decoder is not available")

// Process exit statuses.
const (
	ExitOK                = 0
	ExitInvalid           = 1
	ExitMissingDependency = 2
)
