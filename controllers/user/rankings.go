package user

import (
	"errors"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/services/rankings"

	"github.com/gofiber/fiber/v2"
)

func GetLeaderboard(c *fiber.Ctx) error {
	horizon := c.Params("horizon")
	n := c.QueryInt("limit", 50)

	top, err := rankings.NewService(rankings.NewGormStore(database.DB)).Top(horizon, n)
	if errors.Is(err, rankings.ErrUnknownHorizon) {
		return helpers.JSONError(c, "UNKNOWN_RANKING_HORIZON")
	}
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_RANKINGS")
	}

	return helpers.JSONSuccess(c, "Leaderboard retrieved successfully", top)
}
