package admin

import (
	"errors"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/rates"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateRateRequest struct {
	Family   string          `json:"family"`
	BuyRate  decimal.Decimal `json:"buy_rate"`
	SellRate decimal.Decimal `json:"sell_rate"`
}

func CreateRate(c *fiber.Ctx) error {
	var req CreateRateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	if !req.BuyRate.IsPositive() || !req.SellRate.IsPositive() {
		return helpers.JSONError(c, "RATES_MUST_BE_POSITIVE")
	}

	rate := models.Rate{
		Family:    req.Family,
		BuyRate:   req.BuyRate,
		SellRate:  req.SellRate,
		CreatedBy: adminUser.ID,
	}
	err := rates.NewService(rates.NewGormStore(database.DB)).Create(&rate)
	if errors.Is(err, rates.ErrUnknownFamily) {
		return helpers.JSONError(c, "UNKNOWN_RATE_FAMILY")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_RATE")
	}

	return helpers.JSONSuccess(c, "Rate created (inactive)", rate)
}

// ActivateRate swaps the family's active rate in one transaction; readers
// never see zero or two active rows.
func ActivateRate(c *fiber.Ctx) error {
	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	family := c.Params("family")
	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_RATE_ID")
	}

	aerr := rates.NewService(rates.NewGormStore(database.DB)).Activate(family, uint(id), adminUser.ID)
	switch {
	case errors.Is(aerr, rates.ErrUnknownFamily):
		return helpers.JSONError(c, "UNKNOWN_RATE_FAMILY")
	case errors.Is(aerr, rates.ErrRateNotFound):
		return helpers.JSONError(c, "RATE_NOT_FOUND")
	case aerr != nil:
		return helpers.JSONError(c, "FAILED_TO_ACTIVATE_RATE")
	}

	return helpers.JSONSuccess(c, "Rate activated", fiber.Map{
		"family": family,
		"id":     id,
	})
}

func ListRates(c *fiber.Ctx) error {
	family := c.Params("family")

	out, err := rates.NewService(rates.NewGormStore(database.DB)).List(family)
	if errors.Is(err, rates.ErrUnknownFamily) {
		return helpers.JSONError(c, "UNKNOWN_RATE_FAMILY")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_RATES")
	}

	return helpers.JSONSuccess(c, "Rates retrieved successfully", out)
}
