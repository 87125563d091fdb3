package workflow

import (
	"errors"
	"testing"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		kind Kind
		from Status
		to   Status
		err  error
	}{
		{KindDeposit, StatusPending, StatusApproved, nil},
		{KindDeposit, StatusPending, StatusRejected, nil},
		{KindDeposit, StatusPending, StatusSuspended, ErrInvalidTransition},
		{KindDeposit, StatusApproved, StatusApproved, ErrTerminalState},
		{KindDeposit, StatusApproved, StatusRejected, ErrTerminalState},
		{KindDeposit, StatusRejected, StatusPending, ErrTerminalState},

		{KindWithdrawal, StatusOngoing, StatusApproved, nil},
		{KindWithdrawal, StatusOngoing, StatusRejected, nil},
		{KindWithdrawal, StatusOngoing, StatusSuspended, nil},
		{KindWithdrawal, StatusSuspended, StatusOngoing, nil},
		{KindWithdrawal, StatusSuspended, StatusRejected, nil},
		{KindWithdrawal, StatusSuspended, StatusApproved, ErrInvalidTransition},
		{KindWithdrawal, StatusApproved, StatusOngoing, ErrTerminalState},
		{KindWithdrawal, StatusRejected, StatusOngoing, ErrTerminalState},

		{KindExchange, StatusPending, StatusApproved, nil},
		{KindExchange, StatusApproved, StatusRejected, ErrTerminalState},

		{KindApplication, StatusPending, StatusRejected, nil},
		{KindApplication, StatusRejected, StatusApproved, ErrTerminalState},

		{Kind("unknown"), StatusPending, StatusApproved, ErrUnknownKind},
	}

	for _, tc := range cases {
		err := Transition(tc.kind, tc.from, tc.to)
		if !errors.Is(err, tc.err) {
			t.Errorf("%s %s→%s: expected %v, got %v", tc.kind, tc.from, tc.to, tc.err, err)
		}
	}
}

func TestInitial(t *testing.T) {
	if Initial(KindWithdrawal) != StatusOngoing {
		t.Error("withdrawals start ongoing")
	}
	if Initial(KindDeposit) != StatusPending {
		t.Error("deposits start pending")
	}
	if Initial(KindExchange) != StatusPending || Initial(KindApplication) != StatusPending {
		t.Error("exchanges and applications start pending")
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusApproved, StatusRejected} {
		if !IsTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusOngoing, StatusSuspended} {
		if IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
