package navigator

import "errors"

// ErrInvalidConfig is returned when a request cannot be run.
var ErrInvalidConfig = errors.New("invalid navigation config")
