package inkstudio

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when the admin credential is missing or wrong
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnsupportedMedia is returned when an upload is not an image
	ErrUnsupportedMedia = errors.New("unsupported media type")
	// ErrTooLarge is returned when an upload exceeds MaxUploadBytes
	ErrTooLarge = errors.New("payload too large")
)
