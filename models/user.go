package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Phone        string `gorm:"uniqueIndex;size:20" json:"phone"`
	Password     string `gorm:"size:128" json:"-"`
	FullName     string `gorm:"size:100" json:"full_name"`
	ReferralCode string `gorm:"uniqueIndex;size:16" json:"referral_code"`
	ReferredBy   string `gorm:"index;size:16" json:"referred_by"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	Balance UserBalance    `gorm:"foreignKey:UserID"`
	Entries []BalanceEntry `gorm:"foreignKey:UserID"`
}

type UserPin struct {
	gorm.Model

	UserID   uint   `gorm:"uniqueIndex" json:"user_id"`
	PinHash  string `gorm:"size:128" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
