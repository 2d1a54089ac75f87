package order

// Error is a domain error with a stable code for logs and guards.
type Error struct {
	code string
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable machine-readable code of the error.
func (e *Error) Code() string { return e.code }

var (
	// ErrSessionAbsent signals an event for a user without an active draft.
	ErrSessionAbsent = &Error{code: "SESSION_ABSENT", msg: "no active order session"}
	// ErrGuardViolation signals an event that is not valid for the current state,
	// e.g. a stale button press from a superseded render.
	ErrGuardViolation = &Error{code: "GUARD_VIOLATION", msg: "event not valid for current state"}
)
