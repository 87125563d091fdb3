// Package games computes outcomes for the wallet mini-games. It only does
// the math; wager and payout hit the balance through the ledger as a single
// net application per round.
package games

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	GameSpinWheel = "spin_wheel"
	GameCoinFlip  = "coin_flip"
	GameLuckyDraw = "lucky_draw"
)

var (
	ErrInvalidWager = errors.New("wager must be positive")
	ErrInvalidPick  = errors.New("pick must be heads or tails")
)

// Result is one settled round. Payout = Wager × Multiplier; the ledger net
// is Payout − Wager.
type Result struct {
	Game       string          `json:"game"`
	Wager      decimal.Decimal `json:"wager"`
	Payout     decimal.Decimal `json:"payout"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Label      string          `json:"label"`
}

func (r Result) Net() decimal.Decimal {
	return r.Payout.Sub(r.Wager)
}

type segment struct {
	label      string
	multiplier decimal.Decimal
	weight     float64
}

var spinSegments = []segment{
	{"miss", decimal.Zero, 32},
	{"half", decimal.RequireFromString("0.5"), 24},
	{"even", decimal.RequireFromString("1"), 20},
	{"x1.5", decimal.RequireFromString("1.5"), 12},
	{"x2", decimal.RequireFromString("2"), 8},
	{"x5", decimal.RequireFromString("5"), 3},
	{"x10", decimal.RequireFromString("10"), 1},
}

var luckyPrizes = []segment{
	{"try_again", decimal.Zero, 40},
	{"small", decimal.RequireFromString("0.5"), 30},
	{"medium", decimal.RequireFromString("1.2"), 18},
	{"big", decimal.RequireFromString("3"), 9},
	{"mega", decimal.RequireFromString("8"), 2.5},
	{"jackpot", decimal.RequireFromString("25"), 0.5},
}

// coinFlipPayout pays slightly under 2x on a fair flip; the margin is the
// house edge.
var coinFlipPayout = decimal.RequireFromString("1.95")

func settle(game string, wager decimal.Decimal, seg segment) Result {
	return Result{
		Game:       game,
		Wager:      wager,
		Payout:     wager.Mul(seg.multiplier).Round(8),
		Multiplier: seg.multiplier,
		Label:      seg.label,
	}
}

func drawFrom(game string, wager decimal.Decimal, table []segment) (Result, error) {
	if !wager.IsPositive() {
		return Result{}, ErrInvalidWager
	}
	weights := make([]float64, len(table))
	for i, seg := range table {
		weights[i] = seg.weight
	}
	return settle(game, wager, table[weightedPick(weights)]), nil
}

func SpinWheel(wager decimal.Decimal) (Result, error) {
	return drawFrom(GameSpinWheel, wager, spinSegments)
}

func LuckyDraw(wager decimal.Decimal) (Result, error) {
	return drawFrom(GameLuckyDraw, wager, luckyPrizes)
}

// CoinFlip flips a fair coin against the caller's pick.
func CoinFlip(wager decimal.Decimal, pick string) (Result, error) {
	if !wager.IsPositive() {
		return Result{}, ErrInvalidWager
	}
	if pick != "heads" && pick != "tails" {
		return Result{}, ErrInvalidPick
	}

	flip := "heads"
	if randIndex(2) == 1 {
		flip = "tails"
	}

	res := Result{
		Game:       GameCoinFlip,
		Wager:      wager,
		Multiplier: decimal.Zero,
		Payout:     decimal.Zero,
		Label:      flip,
	}
	if flip == pick {
		res.Multiplier = coinFlipPayout
		res.Payout = wager.Mul(coinFlipPayout).Round(8)
	}
	return res, nil
}

// Multipliers returns the multiplier table of a game for client display.
func Multipliers(game string) []decimal.Decimal {
	var table []segment
	switch game {
	case GameSpinWheel:
		table = spinSegments
	case GameLuckyDraw:
		table = luckyPrizes
	case GameCoinFlip:
		return []decimal.Decimal{decimal.Zero, coinFlipPayout}
	default:
		return nil
	}
	out := make([]decimal.Decimal, len(table))
	for i, seg := range table {
		out[i] = seg.multiplier
	}
	return out
}
