package model

import "errors"

var (
	// ErrValidation marks input rejected before reaching storage or an
	// upstream service.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an action the caller's configuration does not allow.
	ErrForbidden = errors.New("forbidden")
)
