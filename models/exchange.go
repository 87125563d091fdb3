package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CryptoExchange struct {
	gorm.Model

	UserID        uint            `gorm:"index" json:"user_id"`
	CryptoType    string          `gorm:"size:16;not null" json:"crypto_type"`
	Direction     string          `gorm:"size:8;not null" json:"direction"` // buy | sell
	AmountUsdt    decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount_usdt"`
	AmountInr     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount_inr"`
	RateApplied   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"rate_applied"`
	WalletAddress string          `gorm:"size:128" json:"wallet_address"`

	Status     string     `gorm:"size:16;index;default:pending" json:"status"`
	AdminNotes string     `gorm:"size:255" json:"admin_notes"`
	ApprovedBy *uint      `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
}
