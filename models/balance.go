package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserBalance struct {
	gorm.Model

	UserID         uint            `gorm:"uniqueIndex" json:"user_id"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"current_balance"`
	UsdtBalance    decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"usdt_balance"`
}

// BalanceEntry is the ledger row written alongside every balance change.
// Reference is unique, so a replayed mutation collapses onto the original row.
type BalanceEntry struct {
	gorm.Model

	UserID        uint            `gorm:"index" json:"user_id"`
	Currency      string          `gorm:"size:8;not null" json:"currency"`
	Kind          string          `gorm:"size:24;index" json:"kind"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"balance_after"`
	Reference     string          `gorm:"size:64;uniqueIndex" json:"reference"`
	ActorID       uint            `json:"actor_id"`
	Note          string          `gorm:"size:255" json:"note"`
}
