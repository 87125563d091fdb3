package admin

import (
	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	RewardUsdt  decimal.Decimal `json:"reward_usdt"`
}

func CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.Title == "" || req.RewardUsdt.IsNegative() {
		return helpers.JSONError(c, "TITLE_AND_VALID_REWARD_REQUIRED")
	}

	task := models.BonusTask{
		Title:       req.Title,
		Description: req.Description,
		RewardUsdt:  req.RewardUsdt,
		IsActive:    true,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_TASK")
	}

	return helpers.JSONSuccess(c, "Task created successfully", task)
}

type ToggleBonusRequest struct {
	UserID uint `json:"user_id"`
	Active bool `json:"active"`
}

// ToggleUserBonus flips is_bonus_active for one user's completion record.
// It never clears bonus_credited, so re-enabling cannot re-credit.
func ToggleUserBonus(c *fiber.Ctx) error {
	var req ToggleBonusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_TASK_ID")
	}

	res := database.DB.Model(&models.UserTaskCompletion{}).
		Where("user_id = ? AND task_id = ?", req.UserID, taskID).
		Update("is_bonus_active", req.Active)
	if res.Error != nil {
		return helpers.JSONError(c, "FAILED_TO_TOGGLE_BONUS")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONError(c, "COMPLETION_RECORD_NOT_FOUND")
	}

	return helpers.JSONSuccess(c, "Bonus flag updated", fiber.Map{
		"task_id": taskID,
		"user_id": req.UserID,
		"active":  req.Active,
	})
}

func DeactivateTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_TASK_ID")
	}

	res := database.DB.Model(&models.BonusTask{}).
		Where("id = ?", taskID).
		Update("is_active", false)
	if res.Error != nil {
		return helpers.JSONError(c, "FAILED_TO_DEACTIVATE_TASK")
	}
	if res.RowsAffected == 0 {
		return helpers.JSONError(c, "TASK_NOT_FOUND")
	}

	return helpers.JSONSuccess(c, "Task deactivated", fiber.Map{
		"task_id": taskID,
	})
}
