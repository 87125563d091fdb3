package user

import (
	"errors"

	"nrxpay/controllers/auth"
	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/ledger"
	"nrxpay/services/rates"
	"nrxpay/services/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateWithdrawalRequest struct {
	AmountUsdt    decimal.Decimal `json:"amount_usdt"`
	BankAccountID uint            `json:"bank_account_id"`
	Pin           string          `json:"pin"`
}

// CreateWithdrawal checks funds at submission; the debit itself happens
// atomically at approval time.
func CreateWithdrawal(c *fiber.Ctx) error {
	var req CreateWithdrawalRequest
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
	if !auth.CheckPin(user.ID, req.Pin) {
		return helpers.JSONError(c, "INVALID_PIN")
	}

	var account models.BankAccount
	if err := database.DB.Where("id = ? AND user_id = ? AND is_active = true",
		req.BankAccountID, user.ID).First(&account).Error; err != nil {
		return helpers.JSONError(c, "BANK_ACCOUNT_NOT_FOUND")
	}

	svc := ledger.NewService(ledger.NewGormStore(database.DB))
	bal, err := svc.Balance(user.ID)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_BALANCE")
	}
	if bal.UsdtBalance.LessThan(req.AmountUsdt) {
		return helpers.JSONError(c, "INSUFFICIENT_USDT_BALANCE")
	}

	rate, err := rates.NewService(rates.NewGormStore(database.DB)).Active(rates.FamilyUsdt)
	if errors.Is(err, rates.ErrNoActiveRate) {
		return helpers.JSONError(c, "NO_ACTIVE_RATE")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_RATE")
	}

	withdrawal := models.Withdrawal{
		UserID:        user.ID,
		BankAccountID: account.ID,
		AmountUsdt:    req.AmountUsdt,
		AmountInr:     rates.InrFromUsdt(req.AmountUsdt, rate.SellRate),
		RateApplied:   rate.SellRate,
		Status:        string(workflow.Initial(workflow.KindWithdrawal)),
	}
	if err := database.DB.Create(&withdrawal).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_WITHDRAWAL")
	}

	return helpers.JSONSuccess(c, "Withdrawal submitted successfully", withdrawal)
}

func ListWithdrawals(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var withdrawals []models.Withdrawal
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&withdrawals).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_WITHDRAWALS")
	}

	return helpers.JSONSuccess(c, "Withdrawals retrieved successfully", withdrawals)
}
