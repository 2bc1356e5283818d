package checkout

import "errors"

var ErrIllegalTransition = errors.New("illegal transition of checkout status")

type Status string

const (
	StatusIdle           Status = "IDLE"
	StatusInitiated      Status = "INITIATED"
	StatusCollecting     Status = "COLLECTING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusFailed         Status = "FAILED"
	StatusOrderPersisted Status = "ORDER_PERSISTED"
)

func (s Status) IsTerminal() bool {
	return s == StatusFailed || s == StatusOrderPersisted
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo encodes the legal moves of one checkout attempt:
// IDLE -> INITIATED -> COLLECTING -> {CONFIRMED | FAILED},
// CONFIRMED -> ORDER_PERSISTED. There is no path from INITIATED straight to
// ORDER_PERSISTED; an order requires a successful collection first.
func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusIdle:
		return to == StatusInitiated
	case StatusInitiated:
		return to == StatusCollecting
	case StatusCollecting:
		return to == StatusConfirmed || to == StatusFailed
	case StatusConfirmed:
		return to == StatusOrderPersisted
	default:
		return false
	}
}

// Attempt tracks the status of a single checkout. An abandoned attempt simply
// never leaves COLLECTING; there is no cancelled or timed-out state.
type Attempt struct {
	status  Status
	failure string
}

func NewAttempt() *Attempt {
	return &Attempt{status: StatusIdle}
}

func (a *Attempt) Status() Status {
	return a.status
}

// Failure returns the user-displayable error from a failed collection.
func (a *Attempt) Failure() string {
	return a.failure
}

func (a *Attempt) transition(to Status) error {
	if !CanTransitionTo(a.status, to) {
		return ErrIllegalTransition
	}
	a.status = to
	return nil
}

func (a *Attempt) fail(reason string) error {
	if err := a.transition(StatusFailed); err != nil {
		return err
	}
	a.failure = reason
	return nil
}
