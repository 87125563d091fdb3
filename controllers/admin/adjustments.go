package admin

import (
	"errors"
	"strings"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdjustmentRequest struct {
	UserID         uint            `json:"user_id"`
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	Type           string          `json:"type"` // credit | debit
	Note           string          `json:"note"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// CreateAdjustment is the admin's manual balance mutation. The client may
// supply an idempotency key; resubmitting the same key returns the original
// entry instead of moving money twice.
func CreateAdjustment(c *fiber.Ctx) error {
	var req AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	if req.UserID == 0 || !req.Amount.IsPositive() {
		return helpers.JSONError(c, "USER_ID_AND_VALID_AMOUNT_REQUIRED")
	}

	adjType := strings.ToLower(req.Type)
	if adjType != "credit" && adjType != "debit" {
		return helpers.JSONError(c, "TYPE_MUST_BE_CREDIT_OR_DEBIT")
	}

	var target models.User
	if err := database.DB.Where("id = ? AND is_active = true", req.UserID).First(&target).Error; err != nil {
		return helpers.JSONError(c, "USER_NOT_FOUND")
	}

	delta := req.Amount
	if adjType == "debit" {
		delta = delta.Neg()
	}

	reference := req.IdempotencyKey
	if reference == "" {
		reference = "adjustment:" + uuid.New().String()
	}

	note := req.Note
	if note == "" {
		note = "Manual " + adjType + " by admin"
	}

	svc := ledger.NewService(ledger.NewGormStore(database.DB))
	entry, err := svc.Apply(ledger.Request{
		UserID:    target.ID,
		Currency:  ledger.Currency(strings.ToUpper(req.Currency)),
		Delta:     delta,
		Reference: reference,
		Kind:      ledger.KindAdjustment,
		Note:      note,
		ActorID:   adminUser.ID,
	})
	switch {
	case errors.Is(err, ledger.ErrUnknownCurrency):
		return helpers.JSONError(c, "CURRENCY_MUST_BE_INR_OR_USDT")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return helpers.JSONError(c, "INSUFFICIENT_USER_BALANCE")
	case err != nil:
		return helpers.JSONError(c, "FAILED_TO_APPLY_ADJUSTMENT")
	}

	return helpers.JSONSuccess(c, "Adjustment applied successfully", fiber.Map{
		"user_id":        target.ID,
		"reference":      entry.Reference,
		"balance_before": entry.BalanceBefore,
		"balance_after":  entry.BalanceAfter,
	})
}
