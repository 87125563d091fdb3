// Package rankings turns stored per-user aggregates into a leaderboard.
// Ranks are derived at read time; Recalculate rebuilds the aggregates from
// ledger entries rather than trusting whatever was last written.
package rankings

import (
	"encoding/json"
	"errors"
	"sort"
	"time"

	"nrxpay/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	HorizonAllTime = "alltime"
	HorizonWeekly  = "weekly"
	HorizonDaily   = "daily"
)

var ErrUnknownHorizon = errors.New("unknown ranking horizon")

func ValidHorizon(h string) bool {
	switch h {
	case HorizonAllTime, HorizonWeekly, HorizonDaily:
		return true
	}
	return false
}

type Ranked struct {
	Rank int `json:"rank"`
	models.RankingRow
}

// Assign orders rows by rank_score desc (ties: total_volume desc, then
// user_id asc) and assigns dense 1-based ranks: equal scores share a rank,
// the next distinct score gets the next integer.
func Assign(rows []models.RankingRow) []Ranked {
	sorted := make([]models.RankingRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].RankScore.Equal(sorted[j].RankScore) {
			return sorted[i].RankScore.GreaterThan(sorted[j].RankScore)
		}
		if !sorted[i].TotalVolume.Equal(sorted[j].TotalVolume) {
			return sorted[i].TotalVolume.GreaterThan(sorted[j].TotalVolume)
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	out := make([]Ranked, 0, len(sorted))
	rank := 0
	for i, row := range sorted {
		if i == 0 || !row.RankScore.Equal(sorted[i-1].RankScore) {
			rank++
		}
		out = append(out, Ranked{Rank: rank, RankingRow: row})
	}
	return out
}

// Aggregate is one user's countable ledger activity inside a horizon
// window.
type Aggregate struct {
	UserID uint
	Volume decimal.Decimal
	Count  int64
}

// Store persists ranking rows and aggregates ledger entries. InTx runs fn
// in one transaction.
type Store interface {
	InTx(fn func(Store) error) error
	Rows(horizon string) ([]models.RankingRow, error)
	UpsertRow(row *models.RankingRow) error
	// PruneRows removes the horizon's rows for every user not in keep.
	PruneRows(horizon string, keep []uint) error
	UpsertScore(horizon string, userID uint, score decimal.Decimal) error
	AggregateVolume(since time.Time) ([]Aggregate, error)
	CreateAudit(log *models.AuditLog) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Top(horizon string, n int) ([]Ranked, error) {
	if !ValidHorizon(horizon) {
		return nil, ErrUnknownHorizon
	}
	rows, err := s.store.Rows(horizon)
	if err != nil {
		return nil, err
	}
	ranked := Assign(rows)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// SetScore overwrites one user's score for a horizon, creating the row if
// the user has never been ranked there. The audit row is written in the
// same transaction.
func (s *Service) SetScore(horizon string, userID uint, score decimal.Decimal, actorID uint) error {
	if !ValidHorizon(horizon) {
		return ErrUnknownHorizon
	}
	return s.store.InTx(func(tx Store) error {
		if err := tx.UpsertScore(horizon, userID, score); err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]string{
			"horizon":    horizon,
			"rank_score": score.String(),
		})
		return tx.CreateAudit(&models.AuditLog{
			ActorID:  actorID,
			Action:   "ranking.set_score",
			Entity:   "ranking_row",
			EntityID: userID,
			Details:  datatypes.JSON(details),
		})
	})
}

// horizonStart returns the cut-off for entries counted in the horizon;
// the zero time means no cut-off.
func horizonStart(horizon string, now time.Time) time.Time {
	switch horizon {
	case HorizonDaily:
		return now.UTC().Truncate(24 * time.Hour)
	case HorizonWeekly:
		return now.UTC().AddDate(0, 0, -7)
	}
	return time.Time{}
}

// Recalculate rebuilds a horizon's aggregates from deposit and withdrawal
// ledger entries: volume is the sum of absolute amounts, score is
// volume + 10 × transaction count. Users with no countable activity inside
// the window drop off the board rather than keeping last run's numbers.
func (s *Service) Recalculate(horizon string) error {
	if !ValidHorizon(horizon) {
		return ErrUnknownHorizon
	}
	return s.store.InTx(func(tx Store) error {
		totals, err := tx.AggregateVolume(horizonStart(horizon, time.Now()))
		if err != nil {
			return err
		}

		keep := make([]uint, 0, len(totals))
		for _, tot := range totals {
			score := tot.Volume.Add(decimal.NewFromInt(tot.Count * 10))
			row := models.RankingRow{
				UserID:            tot.UserID,
				Horizon:           horizon,
				TotalVolume:       tot.Volume,
				TotalTransactions: tot.Count,
				RankScore:         score,
			}
			if err := tx.UpsertRow(&row); err != nil {
				return err
			}
			keep = append(keep, tot.UserID)
		}
		return tx.PruneRows(horizon, keep)
	})
}
