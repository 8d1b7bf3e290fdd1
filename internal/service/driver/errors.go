package driver

import (
	"errors"

	"taxi-dispatch/internal/service/dispatch"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidPhone          = errors.New("invalid phone")
	ErrInvalidDriverID       = dispatch.ErrInvalidDriverID

	ErrDriverNotFound = dispatch.ErrDriverNotFound
	ErrConflict       = errors.New("driver with this phone already exists")
)
