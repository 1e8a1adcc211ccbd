package errors

import "errors"

// Shared application errors. Services wrap these with fmt.Errorf("%w: ...")
// and handlers map them to HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized covers bad credentials and missing or invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a unique key already exists.
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidCode is the single outcome of a failed one-time code check.
	// It never says whether the code was missing, wrong or expired.
	ErrInvalidCode = errors.New("invalid or expired code")

	// ErrDelivery is returned when an outbound email could not be sent.
	ErrDelivery = errors.New("delivery failed")
)
