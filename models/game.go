package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GameRound struct {
	gorm.Model

	UserID     uint            `gorm:"index" json:"user_id"`
	Game       string          `gorm:"size:16;index" json:"game"` // spin_wheel | coin_flip | lucky_draw
	Wager      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"wager"`
	Payout     decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"payout"`
	Multiplier decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"multiplier"`
	Outcome    datatypes.JSON  `json:"outcome"`
	RefID      string          `gorm:"size:64;uniqueIndex" json:"ref_id"`
}
