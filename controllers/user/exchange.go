package user

import (
	"errors"
	"strings"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/rates"
	"nrxpay/services/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateExchangeRequest struct {
	CryptoType    string          `json:"crypto_type"`
	Direction     string          `json:"direction"`
	AmountUsdt    decimal.Decimal `json:"amount_usdt"`
	WalletAddress string          `json:"wallet_address"`
}

func CreateExchange(c *fiber.Ctx) error {
	var req CreateExchangeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	direction := strings.ToLower(req.Direction)
	if direction != "buy" && direction != "sell" {
		return helpers.JSONError(c, "DIRECTION_MUST_BE_BUY_OR_SELL")
	}
	if !req.AmountUsdt.IsPositive() {
		return helpers.JSONError(c, "AMOUNT_MUST_BE_POSITIVE")
	}
	if req.CryptoType == "" {
		return helpers.JSONError(c, "CRYPTO_TYPE_REQUIRED")
	}

	rate, err := rates.NewService(rates.NewGormStore(database.DB)).Active(rates.FamilyCrypto)
	if errors.Is(err, rates.ErrNoActiveRate) {
		return helpers.JSONError(c, "NO_ACTIVE_RATE")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_RATE")
	}

	applied := rate.BuyRate
	if direction == "sell" {
		applied = rate.SellRate
	}

	exchange := models.CryptoExchange{
		UserID:        user.ID,
		CryptoType:    strings.ToUpper(req.CryptoType),
		Direction:     direction,
		AmountUsdt:    req.AmountUsdt,
		AmountInr:     rates.InrFromUsdt(req.AmountUsdt, applied),
		RateApplied:   applied,
		WalletAddress: req.WalletAddress,
		Status:        string(workflow.Initial(workflow.KindExchange)),
	}
	if err := database.DB.Create(&exchange).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_EXCHANGE")
	}

	return helpers.JSONSuccess(c, "Exchange request submitted successfully", exchange)
}

func ListExchanges(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var exchanges []models.CryptoExchange
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&exchanges).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_EXCHANGES")
	}

	return helpers.JSONSuccess(c, "Exchanges retrieved successfully", exchanges)
}

// GetRate exposes the active rate of a family to the app's forms.
func GetRate(c *fiber.Ctx) error {
	family := c.Params("family")

	rate, err := rates.NewService(rates.NewGormStore(database.DB)).Active(family)
	if errors.Is(err, rates.ErrUnknownFamily) {
		return helpers.JSONError(c, "UNKNOWN_RATE_FAMILY")
	}
	if errors.Is(err, rates.ErrNoActiveRate) {
		return helpers.JSONError(c, "NO_ACTIVE_RATE")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_RATE")
	}

	return helpers.JSONSuccess(c, "Rate retrieved successfully", fiber.Map{
		"family":    rate.Family,
		"buy_rate":  rate.BuyRate,
		"sell_rate": rate.SellRate,
	})
}
