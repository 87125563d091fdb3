package user

import (
	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/ledger"

	"github.com/gofiber/fiber/v2"
)

func GetBalance(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	svc := ledger.NewService(ledger.NewGormStore(database.DB))
	bal, err := svc.Balance(user.ID)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_BALANCE")
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"user_id":         user.ID,
		"current_balance": bal.CurrentBalance,
		"usdt_balance":    bal.UsdtBalance,
	})
}

func ListEntries(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var entries []models.BalanceEntry
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(100).Find(&entries).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_ENTRIES")
	}

	return helpers.JSONSuccess(c, "Entries retrieved successfully", entries)
}
