package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RankingRow stores per-user aggregates for one horizon
// (alltime, weekly, daily). Rank itself is assigned at read time.
type RankingRow struct {
	gorm.Model

	UserID            uint            `gorm:"index;uniqueIndex:idx_user_horizon" json:"user_id"`
	Horizon           string          `gorm:"size:8;index;uniqueIndex:idx_user_horizon" json:"horizon"`
	TotalVolume       decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_volume"`
	TotalTransactions int64           `gorm:"not null;default:0" json:"total_transactions"`
	RankScore         decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"rank_score"`
}
