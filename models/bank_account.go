package models

import (
	"time"

	"gorm.io/gorm"
)

type BankAccount struct {
	gorm.Model

	UserID        uint   `gorm:"index" json:"user_id"`
	HolderName    string `gorm:"size:100" json:"holder_name"`
	AccountNumber string `gorm:"size:32" json:"account_number"`
	IfscCode      string `gorm:"size:16" json:"ifsc_code"`
	BankName      string `gorm:"size:100" json:"bank_name"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}

// AccountApplication covers corporate, current and savings account requests.
// Status lives in its own column; it is never encoded into display fields.
type AccountApplication struct {
	gorm.Model

	UserID        uint   `gorm:"index" json:"user_id"`
	Kind          string `gorm:"size:16;index;not null" json:"kind"` // corporate | current | savings
	ApplicantName string `gorm:"size:100" json:"applicant_name"`
	BusinessName  string `gorm:"size:100" json:"business_name"`
	Phone         string `gorm:"size:20" json:"phone"`
	Email         string `gorm:"size:100" json:"email"`

	// Object-storage paths, resolved to URLs by the client.
	AadharPhotoPath string `gorm:"size:255" json:"aadhar_photo_path"`
	PanPhotoPath    string `gorm:"size:255" json:"pan_photo_path"`

	Status     string     `gorm:"size:16;index;default:pending" json:"status"`
	AdminNotes string     `gorm:"size:255" json:"admin_notes"`
	ApprovedBy *uint      `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
}
