package admin

import (
	"fmt"
	"time"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/metrics"
	"nrxpay/models"
	"nrxpay/services/ledger"
	"nrxpay/services/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ListDeposits(c *fiber.Ctx) error {
	status := c.Query("status", string(workflow.StatusPending))

	var deposits []models.Deposit
	if err := database.DB.Where("status = ?", status).
		Order("created_at ASC").Find(&deposits).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_DEPOSITS")
	}

	return helpers.JSONSuccess(c, "Deposits retrieved successfully", deposits)
}

// ApproveDeposit credits the user and finalizes the record in one
// transaction. A repeated approve finds a terminal status under the row
// lock and fails without touching the balance again.
func ApproveDeposit(c *fiber.Ctx) error {
	return reviewDeposit(c, workflow.StatusApproved)
}

func RejectDeposit(c *fiber.Ctx) error {
	return reviewDeposit(c, workflow.StatusRejected)
}

func reviewDeposit(c *fiber.Ctx, target workflow.Status) error {
	var req reviewRequest
	_ = c.BodyParser(&req)

	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_DEPOSIT_ID")
	}

	var deposit models.Deposit
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&deposit, id).Error; err != nil {
			return errRecordNotFound
		}

		if err := workflow.Transition(workflow.KindDeposit, workflow.Status(deposit.Status), target); err != nil {
			return err
		}

		if target == workflow.StatusApproved {
			svc := ledger.NewService(ledger.NewGormStore(tx))
			if _, err := svc.Apply(ledger.Request{
				UserID:    deposit.UserID,
				Currency:  ledger.CurrencyUSDT,
				Delta:     deposit.AmountUsdt,
				Reference: fmt.Sprintf("deposit:%d", deposit.ID),
				Kind:      ledger.KindDeposit,
				Note:      "Deposit approved, UTR " + deposit.UtrNumber,
				ActorID:   adminUser.ID,
			}); err != nil {
				return err
			}
		}

		now := time.Now()
		deposit.Status = string(target)
		deposit.AdminNotes = req.AdminNotes
		deposit.ApprovedBy = &adminUser.ID
		deposit.ApprovedAt = &now
		if err := tx.Save(&deposit).Error; err != nil {
			return err
		}

		return audit(tx, adminUser.ID, "deposit."+string(target), "deposit", deposit.ID, map[string]any{
			"amount_usdt": deposit.AmountUsdt.String(),
			"user_id":     deposit.UserID,
		})
	})
	if txErr != nil {
		return reviewError(c, txErr)
	}

	metrics.Transitions.WithLabelValues(string(workflow.KindDeposit), string(target)).Inc()
	return helpers.JSONSuccess(c, "Deposit "+string(target), deposit)
}
