package split

import "errors"

// ValidationError marks a user-correctable failure: the operation is rejected,
// session state is unchanged, and the session stays usable.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation sentinels. Compare with errors.Is; wrapped errors carry the
// offending item or participant.
var (
	ErrNegativeQuantity   = &ValidationError{Reason: "negative quantity"}
	ErrFullyAssigned      = &ValidationError{Reason: "fully assigned"}
	ErrNoParticipants     = &ValidationError{Reason: "no participants to split with"}
	ErrUnknownItem        = &ValidationError{Reason: "unknown item"}
	ErrUnknownParticipant = &ValidationError{Reason: "unknown participant"}
	ErrInvalidDelta       = &ValidationError{Reason: "delta must be -1 or +1"}
	ErrDefaultPayer       = &ValidationError{Reason: "default payer cannot be removed or blanked"}
)

// Session lifecycle errors. Not validation failures: they signal misuse of
// the state machine by the caller.
var (
	ErrSessionLocked = errors.New("session is calculated; call Edit before mutating")
	ErrSessionClosed = errors.New("session is closed")
)
