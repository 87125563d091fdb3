package user

import (
	"errors"
	"fmt"
	"time"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/ledger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type taskView struct {
	models.BonusTask
	IsCompleted   bool `json:"is_completed"`
	IsBonusActive bool `json:"is_bonus_active"`
	BonusCredited bool `json:"bonus_credited"`
}

func ListTasks(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var tasks []models.BonusTask
	if err := database.DB.Where("is_active = true").Order("id").Find(&tasks).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_TASKS")
	}

	var completions []models.UserTaskCompletion
	if err := database.DB.Where("user_id = ?", user.ID).Find(&completions).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_COMPLETIONS")
	}
	byTask := make(map[uint]models.UserTaskCompletion, len(completions))
	for _, comp := range completions {
		byTask[comp.TaskID] = comp
	}

	out := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		comp := byTask[task.ID]
		out = append(out, taskView{
			BonusTask:     task,
			IsCompleted:   comp.IsCompleted,
			IsBonusActive: comp.IsBonusActive,
			BonusCredited: comp.BonusCredited,
		})
	}

	return helpers.JSONSuccess(c, "Tasks retrieved successfully", out)
}

func CompleteTask(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_TASK_ID")
	}

	var task models.BonusTask
	if err := database.DB.Where("id = ? AND is_active = true", taskID).First(&task).Error; err != nil {
		return helpers.JSONError(c, "TASK_NOT_FOUND")
	}

	comp := models.UserTaskCompletion{UserID: user.ID, TaskID: task.ID, IsCompleted: true}
	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "task_id"}},
		DoUpdates: clause.Assignments(map[string]any{"is_completed": true}),
	}).Create(&comp).Error
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_COMPLETE_TASK")
	}

	return helpers.JSONSuccess(c, "Task marked complete", fiber.Map{
		"task_id": task.ID,
	})
}

// ClaimBonus credits a completed task's reward exactly once. bonus_credited
// is a one-way latch: toggling the bonus flag afterwards never re-credits,
// and the ledger reference would refuse a duplicate anyway.
func ClaimBonus(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_TASK_ID")
	}

	var task models.BonusTask
	if err := database.DB.Where("id = ? AND is_active = true", taskID).First(&task).Error; err != nil {
		return helpers.JSONError(c, "TASK_NOT_FOUND")
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var comp models.UserTaskCompletion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND task_id = ?", user.ID, task.ID).
			First(&comp).Error; err != nil {
			return errTaskNotCompleted
		}
		if !comp.IsCompleted || !comp.IsBonusActive {
			return errTaskNotCompleted
		}
		if comp.BonusCredited {
			return errBonusAlreadyCredited
		}

		svc := ledger.NewService(ledger.NewGormStore(tx))
		if _, err := svc.Apply(ledger.Request{
			UserID:    user.ID,
			Currency:  ledger.CurrencyUSDT,
			Delta:     task.RewardUsdt,
			Reference: fmt.Sprintf("task:%d:user:%d", task.ID, user.ID),
			Kind:      ledger.KindTaskBonus,
			Note:      "Bonus for task: " + task.Title,
			ActorID:   user.ID,
		}); err != nil {
			return err
		}

		now := time.Now()
		comp.BonusCredited = true
		comp.CreditedAt = &now
		return tx.Save(&comp).Error
	})

	switch {
	case errors.Is(txErr, errTaskNotCompleted):
		return helpers.JSONError(c, "TASK_NOT_COMPLETED_OR_BONUS_INACTIVE")
	case errors.Is(txErr, errBonusAlreadyCredited):
		return helpers.JSONError(c, "BONUS_ALREADY_CREDITED")
	case txErr != nil:
		return helpers.JSONError(c, "FAILED_TO_CLAIM_BONUS")
	}

	return helpers.JSONSuccess(c, "Bonus credited successfully", fiber.Map{
		"task_id":     task.ID,
		"reward_usdt": task.RewardUsdt,
	})
}

var (
	errTaskNotCompleted     = errors.New("task not completed")
	errBonusAlreadyCredited = errors.New("bonus already credited")
)
