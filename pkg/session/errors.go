package session

import "errors"

// Kind classifies a failed operation for user-facing feedback.
type Kind int

const (
	KindUnknown Kind = iota
	KindProviderUnavailable
	KindUserRejected
	KindConnectionFailed
	KindWrongNetwork
	KindMissingRecipient
	KindInvalidAddressFormat
	KindMissingTokenURI
	KindTransactionFailed
)

func (k Kind) String() string {
	switch k {
	case KindProviderUnavailable:
		return "provider unavailable"
	case KindUserRejected:
		return "user rejected"
	case KindConnectionFailed:
		return "connection failed"
	case KindWrongNetwork:
		return "wrong network"
	case KindMissingRecipient:
		return "missing recipient"
	case KindInvalidAddressFormat:
		return "invalid address format"
	case KindMissingTokenURI:
		return "missing token uri"
	case KindTransactionFailed:
		return "transaction failed"
	default:
		return "unknown"
	}
}

// Error is a failed session operation. Message is what the user sees; Err,
// when set, preserves the collaborator's failure for diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the taxonomy kind of err, or KindUnknown when err is not a
// session error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// Caller-contract violations. These are not part of the user-facing taxonomy:
// a well-behaved caller disables the triggering controls instead of hitting
// them.
var (
	// ErrBusy reports an operation dispatched while one of the same kind is
	// still in flight.
	ErrBusy = errors.New("session: operation already in flight")
	// ErrNotConnected reports a gated operation on an unconnected session.
	ErrNotConnected = errors.New("session: wallet not connected")
	// ErrStale reports a completion that landed after the session was reset;
	// its result was dropped.
	ErrStale = errors.New("session: result discarded after reset")
)
