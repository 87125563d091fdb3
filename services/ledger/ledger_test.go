package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store), store
}

func apply(t *testing.T, svc *Service, userID uint, cur Currency, delta string, ref string) {
	t.Helper()
	_, err := svc.Apply(Request{
		UserID:    userID,
		Currency:  cur,
		Delta:     decimal.RequireFromString(delta),
		Reference: ref,
		Kind:      KindAdjustment,
	})
	if err != nil {
		t.Fatalf("apply %s %s: %v", cur, delta, err)
	}
}

func usdtBalance(t *testing.T, svc *Service, userID uint) decimal.Decimal {
	t.Helper()
	bal, err := svc.Balance(userID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return bal.UsdtBalance
}

func TestApplyCreditAndDebit(t *testing.T) {
	svc, _ := newTestService()

	apply(t, svc, 1, CurrencyUSDT, "100", "ref-1")
	apply(t, svc, 1, CurrencyUSDT, "-30", "ref-2")

	if got := usdtBalance(t, svc, 1); !got.Equal(decimal.RequireFromString("70")) {
		t.Errorf("expected 70, got %s", got)
	}
}

func TestApplyRefusesNegativeBalance(t *testing.T) {
	svc, _ := newTestService()
	apply(t, svc, 1, CurrencyUSDT, "10", "ref-1")

	_, err := svc.Apply(Request{
		UserID:    1,
		Currency:  CurrencyUSDT,
		Delta:     decimal.RequireFromString("-10.00000001"),
		Reference: "ref-2",
		Kind:      KindWithdrawal,
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The failed apply must leave no trace.
	if got := usdtBalance(t, svc, 1); !got.Equal(decimal.RequireFromString("10")) {
		t.Errorf("balance changed by failed apply: %s", got)
	}
}

func TestApplyIdempotentByReference(t *testing.T) {
	svc, _ := newTestService()
	apply(t, svc, 1, CurrencyUSDT, "100", "seed")

	req := Request{
		UserID:    1,
		Currency:  CurrencyUSDT,
		Delta:     decimal.RequireFromString("-30"),
		Reference: "withdrawal:42",
		Kind:      KindWithdrawal,
	}

	first, err := svc.Apply(req)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	second, err := svc.Apply(req)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("replay created a new entry: %d vs %d", first.ID, second.ID)
	}
	if got := usdtBalance(t, svc, 1); !got.Equal(decimal.RequireFromString("70")) {
		t.Errorf("expected 70 after replay, got %s", got)
	}
}

func TestApplyConcurrentDuplicatesCreditOnce(t *testing.T) {
	svc, _ := newTestService()
	apply(t, svc, 1, CurrencyUSDT, "100", "seed")

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Apply(Request{
				UserID:    1,
				Currency:  CurrencyUSDT,
				Delta:     decimal.RequireFromString("-30"),
				Reference: "withdrawal:7",
				Kind:      KindWithdrawal,
			})
		}()
	}
	wg.Wait()

	if got := usdtBalance(t, svc, 1); !got.Equal(decimal.RequireFromString("70")) {
		t.Errorf("expected exactly one deduction (70), got %s", got)
	}
}

func TestApplyCurrenciesAreIndependent(t *testing.T) {
	svc, _ := newTestService()

	apply(t, svc, 1, CurrencyINR, "5000", "inr-1")
	apply(t, svc, 1, CurrencyUSDT, "12.5", "usdt-1")

	bal, err := svc.Balance(1)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !bal.CurrentBalance.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("inr balance = %s", bal.CurrentBalance)
	}
	if !bal.UsdtBalance.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("usdt balance = %s", bal.UsdtBalance)
	}
}

func TestApplyValidation(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Apply(Request{UserID: 1, Currency: CurrencyUSDT, Delta: decimal.NewFromInt(1)}); !errors.Is(err, ErrMissingReference) {
		t.Errorf("expected ErrMissingReference, got %v", err)
	}
	if _, err := svc.Apply(Request{UserID: 1, Currency: "EUR", Delta: decimal.NewFromInt(1), Reference: "r"}); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestApplyWritesEntryAndAudit(t *testing.T) {
	svc, store := newTestService()

	entry, err := svc.Apply(Request{
		UserID:    3,
		Currency:  CurrencyUSDT,
		Delta:     decimal.RequireFromString("5"),
		Reference: "task:1:user:3",
		Kind:      KindTaskBonus,
		ActorID:   3,
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !entry.BalanceBefore.Equal(decimal.Zero) || !entry.BalanceAfter.Equal(decimal.RequireFromString("5")) {
		t.Errorf("before/after = %s/%s", entry.BalanceBefore, entry.BalanceAfter)
	}
	audits := store.Audits()
	if len(audits) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(audits))
	}
	if audits[0].Action != "balance.task_bonus" {
		t.Errorf("audit action = %s", audits[0].Action)
	}
}
