package rates

import (
	"errors"
	"sync"
	"testing"

	"nrxpay/models"

	"github.com/shopspring/decimal"
)

func TestInrFromUsdt(t *testing.T) {
	cases := []struct {
		usdt, rate, want string
	}{
		{"30", "92.50", "2775"},
		{"0.333", "92.50", "30.80"},
		{"1", "98", "98"},
		{"0", "98", "0"},
	}
	for _, tc := range cases {
		got := InrFromUsdt(decimal.RequireFromString(tc.usdt), decimal.RequireFromString(tc.rate))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("InrFromUsdt(%s, %s) = %s, want %s", tc.usdt, tc.rate, got, tc.want)
		}
	}
}

func TestUsdtFromInr(t *testing.T) {
	got := UsdtFromInr(decimal.RequireFromString("2775"), decimal.RequireFromString("92.50"))
	if !got.Equal(decimal.RequireFromString("30")) {
		t.Errorf("UsdtFromInr = %s, want 30", got)
	}
	if !UsdtFromInr(decimal.NewFromInt(100), decimal.Zero).IsZero() {
		t.Error("zero rate should convert to zero, not panic")
	}
}

func TestValidFamily(t *testing.T) {
	for _, f := range []string{FamilyUsdt, FamilyFund, FamilyCrypto} {
		if !ValidFamily(f) {
			t.Errorf("%s should be valid", f)
		}
	}
	if ValidFamily("gold") {
		t.Error("unknown family accepted")
	}
}

func newRate(family, buy, sell string) *models.Rate {
	return &models.Rate{
		Family:   family,
		BuyRate:  decimal.RequireFromString(buy),
		SellRate: decimal.RequireFromString(sell),
	}
}

func activeCount(t *testing.T, svc *Service, family string) int {
	t.Helper()
	all, err := svc.List(family)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	n := 0
	for _, r := range all {
		if r.IsActive {
			n++
		}
	}
	return n
}

func TestActivateSwapsActiveRow(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	first := newRate(FamilyUsdt, "92.50", "90.00")
	second := newRate(FamilyUsdt, "93.10", "90.40")
	for _, r := range []*models.Rate{first, second} {
		if err := svc.Create(r); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	if _, err := svc.Active(FamilyUsdt); !errors.Is(err, ErrNoActiveRate) {
		t.Fatalf("expected ErrNoActiveRate before any activation, got %v", err)
	}

	if err := svc.Activate(FamilyUsdt, first.ID, 1); err != nil {
		t.Fatalf("first activation failed: %v", err)
	}
	if err := svc.Activate(FamilyUsdt, second.ID, 1); err != nil {
		t.Fatalf("second activation failed: %v", err)
	}

	active, err := svc.Active(FamilyUsdt)
	if err != nil {
		t.Fatalf("active lookup failed: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("expected rate %d active, got %d", second.ID, active.ID)
	}
	if n := activeCount(t, svc, FamilyUsdt); n != 1 {
		t.Errorf("expected exactly one active row, got %d", n)
	}
}

func TestActivateUnknownRateLeavesActiveUntouched(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	rate := newRate(FamilyCrypto, "98.00", "95.00")
	if err := svc.Create(rate); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Activate(FamilyCrypto, rate.ID, 1); err != nil {
		t.Fatalf("activation failed: %v", err)
	}

	if err := svc.Activate(FamilyCrypto, 999, 1); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("expected ErrRateNotFound, got %v", err)
	}
	// A row of another family is not reachable either.
	other := newRate(FamilyFund, "7.10", "7.00")
	if err := svc.Create(other); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Activate(FamilyCrypto, other.ID, 1); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("expected ErrRateNotFound across families, got %v", err)
	}

	active, err := svc.Active(FamilyCrypto)
	if err != nil {
		t.Fatalf("the previous rate should still be active: %v", err)
	}
	if active.ID != rate.ID {
		t.Errorf("expected rate %d still active, got %d", rate.ID, active.ID)
	}
}

func TestActivateConcurrentKeepsSingleActive(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	ids := make([]uint, 0, 4)
	for i := 0; i < 4; i++ {
		r := newRate(FamilyUsdt, "92.50", "90.00")
		if err := svc.Create(r); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids = append(ids, r.ID)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := svc.Activate(FamilyUsdt, ids[i%len(ids)], 1); err != nil {
				t.Errorf("activation failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if n := activeCount(t, svc, FamilyUsdt); n != 1 {
		t.Errorf("expected exactly one active row after concurrent swaps, got %d", n)
	}
	if _, err := svc.Active(FamilyUsdt); err != nil {
		t.Errorf("a reader should always find one active rate: %v", err)
	}
}

func TestActivateWritesAudit(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	rate := newRate(FamilyFund, "7.10", "7.00")
	if err := svc.Create(rate); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Activate(FamilyFund, rate.ID, 42); err != nil {
		t.Fatalf("activation failed: %v", err)
	}

	audits := store.Audits()
	if len(audits) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(audits))
	}
	if audits[0].Action != "rate.activate" || audits[0].ActorID != 42 || audits[0].EntityID != rate.ID {
		t.Errorf("unexpected audit row: %+v", audits[0])
	}
}
