package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BonusTask struct {
	gorm.Model

	Title       string          `gorm:"size:100;not null" json:"title"`
	Description string          `gorm:"size:255" json:"description"`
	RewardUsdt  decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"reward_usdt"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}

type UserTaskCompletion struct {
	gorm.Model

	UserID uint `gorm:"index;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID uint `gorm:"index;uniqueIndex:idx_user_task" json:"task_id"`

	IsCompleted   bool       `gorm:"default:false" json:"is_completed"`
	IsBonusActive bool       `gorm:"default:false" json:"is_bonus_active"`
	BonusCredited bool       `gorm:"default:false" json:"bonus_credited"`
	CreditedAt    *time.Time `json:"credited_at"`
}
