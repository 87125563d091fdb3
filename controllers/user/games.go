package user

import (
	"encoding/json"
	"errors"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/metrics"
	"nrxpay/models"
	"nrxpay/services/games"
	"nrxpay/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PlayRequest struct {
	Wager decimal.Decimal `json:"wager"`
	Pick  string          `json:"pick"` // coin flip only
}

func PlaySpinWheel(c *fiber.Ctx) error {
	return playGame(c, func(req PlayRequest) (games.Result, error) {
		return games.SpinWheel(req.Wager)
	})
}

func PlayCoinFlip(c *fiber.Ctx) error {
	return playGame(c, func(req PlayRequest) (games.Result, error) {
		return games.CoinFlip(req.Wager, req.Pick)
	})
}

func PlayLuckyDraw(c *fiber.Ctx) error {
	return playGame(c, func(req PlayRequest) (games.Result, error) {
		return games.LuckyDraw(req.Wager)
	})
}

// playGame settles one round: the wager debit and any payout credit run in
// a single transaction, so a refused debit means no draw is recorded.
func playGame(c *fiber.Ctx, draw func(PlayRequest) (games.Result, error)) error {
	var req PlayRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	result, err := draw(req)
	switch {
	case errors.Is(err, games.ErrInvalidWager):
		return helpers.JSONError(c, "WAGER_MUST_BE_POSITIVE")
	case errors.Is(err, games.ErrInvalidPick):
		return helpers.JSONError(c, "PICK_MUST_BE_HEADS_OR_TAILS")
	case err != nil:
		return helpers.JSONError(c, "FAILED_TO_PLAY")
	}

	refID := uuid.New().String()
	var round models.GameRound

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		svc := ledger.NewService(ledger.NewGormStore(tx))

		if _, err := svc.Apply(ledger.Request{
			UserID:    user.ID,
			Currency:  ledger.CurrencyUSDT,
			Delta:     result.Wager.Neg(),
			Reference: "game:" + refID + ":wager",
			Kind:      ledger.KindGame,
			Note:      result.Game + " wager",
			ActorID:   user.ID,
		}); err != nil {
			return err
		}

		if result.Payout.IsPositive() {
			if _, err := svc.Apply(ledger.Request{
				UserID:    user.ID,
				Currency:  ledger.CurrencyUSDT,
				Delta:     result.Payout,
				Reference: "game:" + refID + ":payout",
				Kind:      ledger.KindGame,
				Note:      result.Game + " payout (" + result.Label + ")",
				ActorID:   user.ID,
			}); err != nil {
				return err
			}
		}

		outcome, _ := json.Marshal(result)
		round = models.GameRound{
			UserID:     user.ID,
			Game:       result.Game,
			Wager:      result.Wager,
			Payout:     result.Payout,
			Multiplier: result.Multiplier,
			Outcome:    datatypes.JSON(outcome),
			RefID:      refID,
		}
		return tx.Create(&round).Error
	})

	if errors.Is(txErr, ledger.ErrInsufficientFunds) {
		return helpers.JSONError(c, "INSUFFICIENT_USDT_BALANCE")
	}
	if txErr != nil {
		return helpers.JSONError(c, "FAILED_TO_SETTLE_ROUND")
	}

	metrics.GameRounds.WithLabelValues(result.Game).Inc()

	resp := fiber.Map{
		"ref_id":     refID,
		"game":       result.Game,
		"label":      result.Label,
		"multiplier": result.Multiplier,
		"wager":      result.Wager,
		"payout":     result.Payout,
		"net":        result.Net(),
	}
	svc := ledger.NewService(ledger.NewGormStore(database.DB))
	if bal, err := svc.Balance(user.ID); err == nil {
		resp["usdt_balance"] = bal.UsdtBalance
	}

	return helpers.JSONSuccess(c, "Round settled", resp)
}

func ListGameRounds(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var rounds []models.GameRound
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Limit(50).Find(&rounds).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_ROUNDS")
	}

	return helpers.JSONSuccess(c, "Rounds retrieved successfully", rounds)
}
