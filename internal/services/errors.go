package services

import "errors"

// ErrValidation marks input validation failures across services. Wrap it
// with context: fmt.Errorf("%w: quantity must be positive", ErrValidation).
var ErrValidation = errors.New("validation failed")
