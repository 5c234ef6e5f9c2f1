package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the item domain. Handlers map these to HTTP
// status codes with HTTPStatus.
var (
	// ErrItemNotFound: the referenced item does not exist (stale or
	// removed identifier).
	ErrItemNotFound = errors.New("item not found")

	// ErrUnauthorized: no authenticated actor for an operation that
	// requires one.
	ErrUnauthorized = errors.New("authentication required")

	// ErrPersistence: the data store rejected or failed a read/write.
	ErrPersistence = errors.New("persistence failure")

	// ErrMalformedRecord: a stored row failed schema validation at the
	// persistence boundary. Surfaced as a persistence failure.
	ErrMalformedRecord = fmt.Errorf("%w: malformed item record", ErrPersistence)

	// ErrValidation: malformed or incomplete client input. No side
	// effects were performed.
	ErrValidation = errors.New("validation error")

	// ErrUndefinedTransition: the lifecycle graph defines no such
	// trigger.
	ErrUndefinedTransition = errors.New("undefined lifecycle transition")
)

// NewValidationError wraps ErrValidation with the failing field.
func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: field '%s' - %s", ErrValidation, field, message)
}

// UploadError reports a failed image upload within a batch. Index is the
// zero-based position of the failing file in submission order, so the
// caller can point at the exact image.
type UploadError struct {
	Index int
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of image %d failed: %v", e.Index+1, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// AsUploadError unwraps err into an *UploadError if one is in the chain.
func AsUploadError(err error) (*UploadError, bool) {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// HTTPStatus maps a domain error to an HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUndefinedTransition):
		return http.StatusBadRequest
	default:
		if _, ok := AsUploadError(err); ok {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	}
}
