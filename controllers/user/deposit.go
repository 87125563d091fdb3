package user

import (
	"errors"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/rates"
	"nrxpay/services/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateDepositRequest struct {
	AmountUsdt decimal.Decimal `json:"amount_usdt"`
	UtrNumber  string          `json:"utr_number"`
}

func CreateDeposit(c *fiber.Ctx) error {
	var req CreateDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	if !req.AmountUsdt.IsPositive() {
		return helpers.JSONError(c, "AMOUNT_MUST_BE_POSITIVE")
	}
	if req.UtrNumber == "" {
		return helpers.JSONError(c, "UTR_NUMBER_REQUIRED")
	}

	rate, err := rates.NewService(rates.NewGormStore(database.DB)).Active(rates.FamilyUsdt)
	if errors.Is(err, rates.ErrNoActiveRate) {
		return helpers.JSONError(c, "NO_ACTIVE_RATE")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_RATE")
	}

	deposit := models.Deposit{
		UserID:      user.ID,
		AmountUsdt:  req.AmountUsdt,
		AmountInr:   rates.InrFromUsdt(req.AmountUsdt, rate.BuyRate),
		RateApplied: rate.BuyRate,
		UtrNumber:   req.UtrNumber,
		Status:      string(workflow.Initial(workflow.KindDeposit)),
	}
	if err := database.DB.Create(&deposit).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_DEPOSIT")
	}

	return helpers.JSONSuccess(c, "Deposit submitted successfully", deposit)
}

func ListDeposits(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var deposits []models.Deposit
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&deposits).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_DEPOSITS")
	}

	return helpers.JSONSuccess(c, "Deposits retrieved successfully", deposits)
}
