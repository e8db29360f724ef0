package tui

import "minter/pkg/session"

// Messages delivered back to the Update loop by background commands.

// connectDoneMsg reports the outcome of a wallet connection attempt.
type connectDoneMsg struct {
	err error
}

// nameRefreshedMsg fires after a collection name fetch settles. The
// result, if any, lives in the session snapshot.
type nameRefreshedMsg struct{}

// mintSubmittedMsg reports the outcome of transaction submission. On
// success the ticket tracks the pending confirmation.
type mintSubmittedMsg struct {
	ticket *session.MintTicket
	err    error
}

// mintSettledMsg reports the final mint outcome after confirmation.
type mintSettledMsg struct {
	err error
}

// approvalMsg surfaces a parked wallet prompt to the event loop.
type approvalMsg struct {
	req approvalRequest
}

// statusExpiredMsg clears a transient notice such as "copied".
type statusExpiredMsg struct {
	id int
}
