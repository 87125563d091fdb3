package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Rate holds one conversion rate row per family (usdt, fund, crypto).
// A partial unique index on (family) WHERE is_active, created in
// database.Connect, guarantees at most one active row per family.
type Rate struct {
	gorm.Model

	Family    string          `gorm:"size:16;index;not null" json:"family"`
	BuyRate   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"buy_rate"`
	SellRate  decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"sell_rate"`
	IsActive  bool            `gorm:"default:false;index" json:"is_active"`
	CreatedBy uint            `json:"created_by"`
}
