// Package workflow holds the status transition rules shared by deposits,
// withdrawals, crypto exchanges and account applications. Controllers call
// Transition inside the same database transaction that applies the side
// effects, so a double-pressed approve fails here instead of re-crediting.
package workflow

import "errors"

type Status string

const (
	StatusPending   Status = "pending"
	StatusOngoing   Status = "ongoing"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindWithdrawal  Kind = "withdrawal"
	KindExchange    Kind = "exchange"
	KindApplication Kind = "application"
)

var (
	ErrTerminalState     = errors.New("record is in a terminal state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownKind       = errors.New("unknown workflow kind")
)

var transitions = map[Kind]map[Status][]Status{
	KindDeposit: {
		StatusPending: {StatusApproved, StatusRejected},
	},
	KindWithdrawal: {
		StatusOngoing:   {StatusApproved, StatusRejected, StatusSuspended},
		StatusSuspended: {StatusOngoing, StatusRejected},
	},
	KindExchange: {
		StatusPending: {StatusApproved, StatusRejected},
	},
	KindApplication: {
		StatusPending: {StatusApproved, StatusRejected},
	},
}

// Initial returns the status a freshly submitted record of the kind carries.
func Initial(kind Kind) Status {
	if kind == KindWithdrawal {
		return StatusOngoing
	}
	return StatusPending
}

func IsTerminal(status Status) bool {
	return status == StatusApproved || status == StatusRejected
}

// Transition validates from → to for the kind. Terminal states reject every
// transition, including a repeat of the one that got them there.
func Transition(kind Kind, from, to Status) error {
	rules, ok := transitions[kind]
	if !ok {
		return ErrUnknownKind
	}
	if IsTerminal(from) {
		return ErrTerminalState
	}
	for _, allowed := range rules[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrInvalidTransition
}
