package domain

import "errors"

var (
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrBrandNotFound    = errors.New("brand not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductsNotFound = errors.New("one or more products were not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrContactNotFound  = errors.New("contact details not found")

	ErrStorageNotConfigured = errors.New("image storage is not configured")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes malformed client input. Its message is safe to
// return to the caller as-is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var (
	ErrMissingCredentials  = NewValidationError("missing username or password")
	ErrPasswordTooLong     = NewValidationError("password must be at most 72 bytes")
	ErrCategoryChange      = NewValidationError("category changes require creating a new product")
	ErrUnsupportedCategory = NewValidationError("unsupported product category")
)
