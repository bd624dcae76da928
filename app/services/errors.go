package services

import "errors"

// ErrInvalid marks input rejected by model validation.
var ErrInvalid = errors.New("invalid input")
