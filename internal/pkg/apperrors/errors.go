package apperrors

import "errors"

// Backend interaction errors
var (
	// ErrBackendUnavailable marks transport-level failures: no response from
	// the ERP backend at all (DNS, refused connection, timeout).
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBackendRejected marks application-level failures: the backend
	// answered, but with a non-2xx status or a status:false envelope.
	ErrBackendRejected = errors.New("backend rejected request")

	// ErrNotFoundYet marks HTTP 404 from the backend. For several resources
	// (hostel allocation, bus pass, payment histories, pending orders) this is
	// a valid "no record yet" state rather than an error.
	ErrNotFoundYet = errors.New("record not found yet")

	// ErrUnauthenticated marks HTTP 401 or a missing/expired portal session.
	ErrUnauthenticated = errors.New("not authenticated")
)

// Portal-side errors
var (
	ErrSessionExpired   = errors.New("session expired")
	ErrValidationFailed = errors.New("validation failed")
)

// ErrPaymentVerification means the gateway callback could not be verified
// by the backend. The charge may still have succeeded gateway-side, so
// callers must surface a contact-support message, never a retry.
var ErrPaymentVerification = errors.New("payment verification failed")

// Profile / permission-request errors
var (
	ErrChangeRequestEmpty      = errors.New("nothing to request")
	ErrChangeRequestIncomplete = errors.New("change request entry incomplete")
	ErrDuplicateChangeField    = errors.New("field already has a pending change entry")
	ErrUnknownProfileField     = errors.New("unknown profile field")
)

// CustomError carries a user-facing message alongside the sentinel it wraps.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps ErrBackendRejected with the message the backend sent.
func NewBackendError(message string) error {
	return &CustomError{Err: ErrBackendRejected, Message: message}
}

// NewValidationError wraps ErrValidationFailed with a field-specific message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// MessageFor extracts the user-facing message from err, falling back when the
// error carries none worth showing.
func MessageFor(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
