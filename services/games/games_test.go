package games

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSpinWheelOutcomeInTable(t *testing.T) {
	wager := decimal.RequireFromString("10")
	table := Multipliers(GameSpinWheel)

	for i := 0; i < 500; i++ {
		res, err := SpinWheel(wager)
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		found := false
		for _, m := range table {
			if res.Multiplier.Equal(m) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("multiplier %s not in segment table", res.Multiplier)
		}
		if !res.Payout.Equal(wager.Mul(res.Multiplier).Round(8)) {
			t.Fatalf("payout %s != wager × multiplier", res.Payout)
		}
	}
}

func TestCoinFlipPayout(t *testing.T) {
	wager := decimal.RequireFromString("4")

	wins, losses := 0, 0
	for i := 0; i < 500; i++ {
		res, err := CoinFlip(wager, "heads")
		if err != nil {
			t.Fatalf("flip: %v", err)
		}
		switch {
		case res.Payout.IsZero():
			losses++
			if !res.Net().Equal(wager.Neg()) {
				t.Fatalf("losing net should be -wager, got %s", res.Net())
			}
		default:
			wins++
			if !res.Payout.Equal(decimal.RequireFromString("7.8")) {
				t.Fatalf("winning payout should be 7.8, got %s", res.Payout)
			}
		}
		if res.Label != "heads" && res.Label != "tails" {
			t.Fatalf("unexpected flip label %q", res.Label)
		}
	}
	if wins == 0 || losses == 0 {
		t.Errorf("500 flips should produce both outcomes, got %d wins / %d losses", wins, losses)
	}
}

func TestCoinFlipValidation(t *testing.T) {
	if _, err := CoinFlip(decimal.Zero, "heads"); !errors.Is(err, ErrInvalidWager) {
		t.Errorf("expected ErrInvalidWager, got %v", err)
	}
	if _, err := CoinFlip(decimal.NewFromInt(-5), "tails"); !errors.Is(err, ErrInvalidWager) {
		t.Errorf("expected ErrInvalidWager for negative wager, got %v", err)
	}
	if _, err := CoinFlip(decimal.NewFromInt(1), "edge"); !errors.Is(err, ErrInvalidPick) {
		t.Errorf("expected ErrInvalidPick, got %v", err)
	}
}

func TestLuckyDrawReachesLowTiers(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		res, err := LuckyDraw(decimal.NewFromInt(1))
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		seen[res.Label] = true
	}
	// The frequent tiers should all show up in 2000 draws; the jackpot may
	// legitimately not.
	for _, label := range []string{"try_again", "small", "medium"} {
		if !seen[label] {
			t.Errorf("tier %q never drawn", label)
		}
	}
}

func TestWeightedPickBounds(t *testing.T) {
	weights := []float64{1, 2, 3}
	for i := 0; i < 1000; i++ {
		if idx := weightedPick(weights); idx < 0 || idx > 2 {
			t.Fatalf("index out of range: %d", idx)
		}
	}
	if weightedPick([]float64{0, 0}) != 0 {
		t.Error("all-zero weights should fall back to the first index")
	}
}
