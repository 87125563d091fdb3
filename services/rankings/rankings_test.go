package rankings

import (
	"testing"
	"time"

	"nrxpay/models"
	"nrxpay/services/ledger"

	"github.com/shopspring/decimal"
)

func row(userID uint, score, volume string) models.RankingRow {
	return models.RankingRow{
		UserID:      userID,
		RankScore:   decimal.RequireFromString(score),
		TotalVolume: decimal.RequireFromString(volume),
	}
}

func TestAssignOrdersByScore(t *testing.T) {
	ranked := Assign([]models.RankingRow{
		row(1, "100", "10"),
		row(2, "300", "10"),
		row(3, "200", "10"),
	})

	wantOrder := []uint{2, 3, 1}
	for i, want := range wantOrder {
		if ranked[i].UserID != want {
			t.Errorf("position %d: expected user %d, got %d", i, want, ranked[i].UserID)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, ranked[i].Rank)
		}
	}
}

func TestAssignDenseRanksOnTies(t *testing.T) {
	ranked := Assign([]models.RankingRow{
		row(1, "200", "50"),
		row(2, "200", "80"),
		row(3, "100", "10"),
		row(4, "100", "10"),
	})

	// Tied scores share a rank; the next distinct score is rank+1, not
	// position+1.
	if ranked[0].Rank != 1 || ranked[1].Rank != 1 {
		t.Errorf("tied leaders should both be rank 1, got %d and %d", ranked[0].Rank, ranked[1].Rank)
	}
	if ranked[2].Rank != 2 || ranked[3].Rank != 2 {
		t.Errorf("second group should be rank 2, got %d and %d", ranked[2].Rank, ranked[3].Rank)
	}

	// Within a tie, higher volume first; equal volume falls back to user id.
	if ranked[0].UserID != 2 {
		t.Errorf("higher volume should lead the tie, got user %d", ranked[0].UserID)
	}
	if ranked[2].UserID != 3 || ranked[3].UserID != 4 {
		t.Errorf("equal ties should order by user id: got %d, %d", ranked[2].UserID, ranked[3].UserID)
	}
}

func TestAssignEmpty(t *testing.T) {
	if got := Assign(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d rows", len(got))
	}
}

func TestValidHorizon(t *testing.T) {
	for _, h := range []string{HorizonAllTime, HorizonWeekly, HorizonDaily} {
		if !ValidHorizon(h) {
			t.Errorf("%s should be valid", h)
		}
	}
	if ValidHorizon("monthly") {
		t.Error("unknown horizon accepted")
	}
}

func entry(userID uint, kind, amount string, at time.Time) models.BalanceEntry {
	e := models.BalanceEntry{
		UserID: userID,
		Kind:   kind,
		Amount: decimal.RequireFromString(amount),
	}
	e.CreatedAt = at
	return e
}

func TestRecalculateAggregatesLedger(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	now := time.Now()

	store.AddEntry(entry(9, ledger.KindDeposit, "100", now))
	store.AddEntry(entry(9, ledger.KindWithdrawal, "-40", now))
	store.AddEntry(entry(5, ledger.KindDeposit, "10", now))
	// Game rounds and bonuses don't count toward volume.
	store.AddEntry(entry(5, ledger.KindGame, "500", now))

	if err := svc.Recalculate(HorizonDaily); err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}

	top, err := svc.Top(HorizonDaily, 0)
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 ranked users, got %d", len(top))
	}
	// User 9: volume 140, 2 transactions, score 160. User 5: 10 + 10 = 20.
	if top[0].UserID != 9 || !top[0].RankScore.Equal(decimal.NewFromInt(160)) {
		t.Errorf("expected user 9 leading with score 160, got user %d score %s", top[0].UserID, top[0].RankScore)
	}
	if top[1].UserID != 5 || !top[1].RankScore.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected user 5 with score 20, got user %d score %s", top[1].UserID, top[1].RankScore)
	}
}

func TestRecalculateDropsIdleUsers(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)
	now := time.Now()

	store.AddEntry(entry(9, ledger.KindDeposit, "100", now))
	store.AddEntry(entry(5, ledger.KindDeposit, "50", now))

	if err := svc.Recalculate(HorizonDaily); err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if top, _ := svc.Top(HorizonDaily, 0); len(top) != 2 {
		t.Fatalf("expected both users ranked, got %d rows", len(top))
	}

	// A day passes: user 9's deposit falls out of the daily window while
	// user 5 stays active.
	store.entries[0].CreatedAt = now.AddDate(0, 0, -2)

	if err := svc.Recalculate(HorizonDaily); err != nil {
		t.Fatalf("second recalculate failed: %v", err)
	}
	top, err := svc.Top(HorizonDaily, 0)
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("idle user should drop off the board, got %d rows", len(top))
	}
	if top[0].UserID != 5 {
		t.Errorf("expected only user 5 ranked, got user %d", top[0].UserID)
	}

	// The aged entry still counts for horizons whose window covers it.
	if err := svc.Recalculate(HorizonWeekly); err != nil {
		t.Fatalf("weekly recalculate failed: %v", err)
	}
	if top, _ := svc.Top(HorizonWeekly, 0); len(top) != 2 {
		t.Errorf("expected both users on the weekly board, got %d rows", len(top))
	}
}

func TestRecalculateEmptyWindowClearsBoard(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	store.AddEntry(entry(9, ledger.KindDeposit, "100", time.Now()))
	if err := svc.Recalculate(HorizonDaily); err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}

	store.entries[0].CreatedAt = time.Now().AddDate(0, 0, -2)
	if err := svc.Recalculate(HorizonDaily); err != nil {
		t.Fatalf("second recalculate failed: %v", err)
	}

	if top, _ := svc.Top(HorizonDaily, 0); len(top) != 0 {
		t.Errorf("expected an empty board, got %d rows", len(top))
	}
}

func TestSetScoreUpsertsAndAudits(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	if err := svc.SetScore(HorizonAllTime, 7, decimal.NewFromInt(500), 42); err != nil {
		t.Fatalf("set score failed: %v", err)
	}
	if err := svc.SetScore(HorizonAllTime, 7, decimal.NewFromInt(800), 42); err != nil {
		t.Fatalf("second set score failed: %v", err)
	}

	top, err := svc.Top(HorizonAllTime, 0)
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(top) != 1 || !top[0].RankScore.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected one row with score 800, got %+v", top)
	}

	audits := store.Audits()
	if len(audits) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(audits))
	}
	if audits[0].Action != "ranking.set_score" || audits[0].ActorID != 42 || audits[0].EntityID != 7 {
		t.Errorf("unexpected audit row: %+v", audits[0])
	}

	if err := svc.SetScore("monthly", 7, decimal.Zero, 42); err != ErrUnknownHorizon {
		t.Errorf("expected ErrUnknownHorizon, got %v", err)
	}
}
