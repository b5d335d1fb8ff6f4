package listing

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrNotFound              = errors.New("listing not found")
	ErrForbidden             = errors.New("forbidden")
	ErrDuplicateRegistration = errors.New("registration number already exists")
)
