package user

import (
	"strings"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBankAccountRequest struct {
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
	IfscCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
}

func CreateBankAccount(c *fiber.Ctx) error {
	var req CreateBankAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	if req.HolderName == "" || req.AccountNumber == "" || req.IfscCode == "" {
		return helpers.JSONError(c, "HOLDER_ACCOUNT_AND_IFSC_REQUIRED")
	}

	account := models.BankAccount{
		UserID:        user.ID,
		HolderName:    strings.TrimSpace(req.HolderName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		IfscCode:      strings.ToUpper(strings.TrimSpace(req.IfscCode)),
		BankName:      strings.TrimSpace(req.BankName),
		IsActive:      true,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_BANK_ACCOUNT")
	}

	return helpers.JSONSuccess(c, "Bank account added successfully", account)
}

func ListBankAccounts(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var accounts []models.BankAccount
	if err := database.DB.Where("user_id = ? AND is_active = true", user.ID).
		Order("created_at DESC").Find(&accounts).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_BANK_ACCOUNTS")
	}

	return helpers.JSONSuccess(c, "Bank accounts retrieved successfully", accounts)
}

func DeactivateBankAccount(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_ACCOUNT_ID")
	}

	res := database.DB.Model(&models.BankAccount{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("is_active", false)
	if res.Error != nil {
		return helpers.JSONError(c, "FAILED_TO_DEACTIVATE_BANK_ACCOUNT")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONError(c, "BANK_ACCOUNT_NOT_FOUND")
	}

	return helpers.JSONSuccess(c, "Bank account removed successfully", fiber.Map{
		"id": id,
	})
}
