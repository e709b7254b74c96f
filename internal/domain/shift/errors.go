package shift

import "errors"

// ErrInvalidFormat indicates a shift code is neither a known code nor a
// parseable "HH:MM-HH:MM" custom timing.
var ErrInvalidFormat = errors.New("invalid shift format")
