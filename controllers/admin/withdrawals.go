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

func ListWithdrawals(c *fiber.Ctx) error {
	status := c.Query("status", string(workflow.StatusOngoing))

	var withdrawals []models.Withdrawal
	if err := database.DB.Where("status = ?", status).
		Order("created_at ASC").Find(&withdrawals).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_WITHDRAWALS")
	}

	return helpers.JSONSuccess(c, "Withdrawals retrieved successfully", withdrawals)
}

// ApproveWithdrawal debits the user exactly once. If funds fell below the
// requested amount since submission, the approval fails and the record
// stays ongoing.
func ApproveWithdrawal(c *fiber.Ctx) error {
	return reviewWithdrawal(c, workflow.StatusApproved)
}

func RejectWithdrawal(c *fiber.Ctx) error {
	return reviewWithdrawal(c, workflow.StatusRejected)
}

func SuspendWithdrawal(c *fiber.Ctx) error {
	return reviewWithdrawal(c, workflow.StatusSuspended)
}

// ResumeWithdrawal moves a suspended withdrawal back to ongoing review.
func ResumeWithdrawal(c *fiber.Ctx) error {
	return reviewWithdrawal(c, workflow.StatusOngoing)
}

func reviewWithdrawal(c *fiber.Ctx, target workflow.Status) error {
	var req reviewRequest
	_ = c.BodyParser(&req)

	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_WITHDRAWAL_ID")
	}

	var withdrawal models.Withdrawal
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&withdrawal, id).Error; err != nil {
			return errRecordNotFound
		}

		if err := workflow.Transition(workflow.KindWithdrawal, workflow.Status(withdrawal.Status), target); err != nil {
			return err
		}

		if target == workflow.StatusApproved {
			svc := ledger.NewService(ledger.NewGormStore(tx))
			if _, err := svc.Apply(ledger.Request{
				UserID:    withdrawal.UserID,
				Currency:  ledger.CurrencyUSDT,
				Delta:     withdrawal.AmountUsdt.Neg(),
				Reference: fmt.Sprintf("withdrawal:%d", withdrawal.ID),
				Kind:      ledger.KindWithdrawal,
				Note:      fmt.Sprintf("Withdrawal payout INR %s", withdrawal.AmountInr),
				ActorID:   adminUser.ID,
			}); err != nil {
				return err
			}
		}

		withdrawal.Status = string(target)
		withdrawal.AdminNotes = req.AdminNotes
		if target == workflow.StatusApproved || target == workflow.StatusRejected {
			now := time.Now()
			withdrawal.ApprovedBy = &adminUser.ID
			withdrawal.ApprovedAt = &now
		}
		if err := tx.Save(&withdrawal).Error; err != nil {
			return err
		}

		return audit(tx, adminUser.ID, "withdrawal."+string(target), "withdrawal", withdrawal.ID, map[string]any{
			"amount_usdt": withdrawal.AmountUsdt.String(),
			"user_id":     withdrawal.UserID,
		})
	})
	if txErr != nil {
		return reviewError(c, txErr)
	}

	metrics.Transitions.WithLabelValues(string(workflow.KindWithdrawal), string(target)).Inc()
	return helpers.JSONSuccess(c, "Withdrawal "+string(target), withdrawal)
}
