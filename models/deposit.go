package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Deposit struct {
	gorm.Model

	UserID      uint            `gorm:"index" json:"user_id"`
	AmountUsdt  decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount_usdt"`
	AmountInr   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount_inr"`
	RateApplied decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"rate_applied"`
	UtrNumber   string          `gorm:"size:64" json:"utr_number"`

	Status     string     `gorm:"size:16;index;default:pending" json:"status"`
	AdminNotes string     `gorm:"size:255" json:"admin_notes"`
	ApprovedBy *uint      `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
}
