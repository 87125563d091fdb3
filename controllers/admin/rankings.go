package admin

import (
	"errors"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/rankings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SetScoreRequest struct {
	UserID    uint            `json:"user_id"`
	RankScore decimal.Decimal `json:"rank_score"`
}

func SetRankScore(c *fiber.Ctx) error {
	var req SetScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	if req.UserID == 0 {
		return helpers.JSONError(c, "USER_ID_REQUIRED")
	}

	horizon := c.Params("horizon")
	err := rankings.NewService(rankings.NewGormStore(database.DB)).SetScore(horizon, req.UserID, req.RankScore, adminUser.ID)
	if errors.Is(err, rankings.ErrUnknownHorizon) {
		return helpers.JSONError(c, "UNKNOWN_RANKING_HORIZON")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_SET_SCORE")
	}

	return helpers.JSONSuccess(c, "Rank score updated", fiber.Map{
		"user_id":    req.UserID,
		"horizon":    horizon,
		"rank_score": req.RankScore,
	})
}

// RecalculateRankings rebuilds a horizon's aggregates from the ledger.
func RecalculateRankings(c *fiber.Ctx) error {
	horizon := c.Params("horizon")

	err := rankings.NewService(rankings.NewGormStore(database.DB)).Recalculate(horizon)
	if errors.Is(err, rankings.ErrUnknownHorizon) {
		return helpers.JSONError(c, "UNKNOWN_RANKING_HORIZON")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_RECALCULATE")
	}

	return helpers.JSONSuccess(c, "Rankings recalculated", fiber.Map{
		"horizon": horizon,
	})
}
