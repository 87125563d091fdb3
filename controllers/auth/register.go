package auth

import (
	"strings"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	ReferralCode string `json:"referral_code"`
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" || len(req.Password) < 6 {
		return helpers.JSONError(c, "PHONE_AND_PASSWORD_REQUIRED")
	}

	var existing models.User
	if err := database.DB.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "PHONE_ALREADY_REGISTERED")
	}

	referredBy := ""
	if req.ReferralCode != "" {
		var referrer models.User
		if err := database.DB.Where("referral_code = ?", req.ReferralCode).First(&referrer).Error; err != nil {
			return helpers.JSONError(c, "INVALID_REFERRAL_CODE")
		}
		referredBy = referrer.ReferralCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_HASH_PASSWORD")
	}

	user := models.User{
		Phone:        req.Phone,
		Password:     string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		ReferralCode: strings.ToUpper(uuid.New().String()[:8]),
		ReferredBy:   referredBy,
		IsActive:     true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserBalance{UserID: user.ID}).Error
	})
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_USER")
	}

	return helpers.JSONSuccess(c, "User registered successfully", fiber.Map{
		"user_id":       user.ID,
		"phone":         user.Phone,
		"referral_code": user.ReferralCode,
	})
}
