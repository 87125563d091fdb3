package admin

import (
	"time"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/metrics"
	"nrxpay/models"
	"nrxpay/services/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ListApplications(c *fiber.Ctx) error {
	status := c.Query("status", string(workflow.StatusPending))

	q := database.DB.Where("status = ?", status)
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var applications []models.AccountApplication
	if err := q.Order("created_at ASC").Find(&applications).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_APPLICATIONS")
	}

	return helpers.JSONSuccess(c, "Applications retrieved successfully", applications)
}

func ApproveApplication(c *fiber.Ctx) error {
	return reviewApplication(c, workflow.StatusApproved)
}

func RejectApplication(c *fiber.Ctx) error {
	return reviewApplication(c, workflow.StatusRejected)
}

// reviewApplication has no balance side effect; it only finalizes the
// record under the same terminal-state rules as the money flows.
func reviewApplication(c *fiber.Ctx, target workflow.Status) error {
	var req reviewRequest
	_ = c.BodyParser(&req)

	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_APPLICATION_ID")
	}

	var application models.AccountApplication
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&application, id).Error; err != nil {
			return errRecordNotFound
		}

		if err := workflow.Transition(workflow.KindApplication, workflow.Status(application.Status), target); err != nil {
			return err
		}

		now := time.Now()
		application.Status = string(target)
		application.AdminNotes = req.AdminNotes
		application.ApprovedBy = &adminUser.ID
		application.ApprovedAt = &now
		if err := tx.Save(&application).Error; err != nil {
			return err
		}

		return audit(tx, adminUser.ID, "application."+string(target), "account_application", application.ID, map[string]any{
			"kind":    application.Kind,
			"user_id": application.UserID,
		})
	})
	if txErr != nil {
		return reviewError(c, txErr)
	}

	metrics.Transitions.WithLabelValues(string(workflow.KindApplication), string(target)).Inc()
	return helpers.JSONSuccess(c, "Application "+string(target), application)
}
