package backend

import "errors"

// Kind categorizes gateway failures so callers can branch on the failure
// class instead of matching message strings.
type Kind int

const (
	// KindUnavailable: the backend could not be reached or enumerated.
	// Recoverable - callers treat it as "no models to select", never a crash.
	KindUnavailable Kind = iota
	// KindBackendError: a chat call failed (unreachable, unknown model,
	// non-200 status). Recoverable at the turn level.
	KindBackendError
	// KindInvalidResponse: the backend answered with a payload this client
	// cannot interpret.
	KindInvalidResponse
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "backend_unavailable"
	case KindBackendError:
		return "backend_error"
	case KindInvalidResponse:
		return "invalid_response"
	}
	return "unknown"
}

// Error is a typed gateway failure carrying the backend-supplied detail.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorKind extracts the gateway failure kind from err, unwrapping as
// needed. The bool is false when err carries no gateway kind.
func ErrorKind(err error) (Kind, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return 0, false
}
