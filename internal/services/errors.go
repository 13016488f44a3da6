package services

import (
	"errors"
	"fmt"
)

// Controllers map these onto HTTP status codes with errors.Is.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")

	ErrSlugTaken = fmt.Errorf("%w: slug already exists, please choose another", ErrValidation)
)
