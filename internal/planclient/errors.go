package planclient

import "errors"

var (
	// ErrBackendUnavailable indicates the plan backend is unreachable.
	ErrBackendUnavailable = errors.New("plan backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("plan backend request timed out")

	// ErrInvalidResponse indicates the response body could not be decoded.
	ErrInvalidResponse = errors.New("invalid plan backend response")

	// ErrUnexpectedStatus indicates a non-200 status without an error body.
	ErrUnexpectedStatus = errors.New("unexpected plan backend status")
)

// BackendError is a failure the backend reported through the "error"
// field of its response. Message is meant to be shown to the user as is.
type BackendError struct {
	Op      Operation
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// IsTransport reports whether err is a transport-level failure rather
// than an application-reported one.
func IsTransport(err error) bool {
	var be *BackendError
	if err == nil || errors.As(err, &be) {
		return false
	}
	return true
}
