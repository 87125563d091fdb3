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

func ListExchanges(c *fiber.Ctx) error {
	status := c.Query("status", string(workflow.StatusPending))

	var exchanges []models.CryptoExchange
	if err := database.DB.Where("status = ?", status).
		Order("created_at ASC").Find(&exchanges).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_EXCHANGES")
	}

	return helpers.JSONSuccess(c, "Exchanges retrieved successfully", exchanges)
}

func ApproveExchange(c *fiber.Ctx) error {
	return reviewExchange(c, workflow.StatusApproved)
}

func RejectExchange(c *fiber.Ctx) error {
	return reviewExchange(c, workflow.StatusRejected)
}

// reviewExchange settles a crypto exchange: a sell credits INR at the
// applied rate, a buy debits the USDT being spent.
func reviewExchange(c *fiber.Ctx, target workflow.Status) error {
	var req reviewRequest
	_ = c.BodyParser(&req)

	adminUser, ok := c.Locals("admin").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_SESSION")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return helpers.JSONError(c, "INVALID_EXCHANGE_ID")
	}

	var exchange models.CryptoExchange
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&exchange, id).Error; err != nil {
			return errRecordNotFound
		}

		if err := workflow.Transition(workflow.KindExchange, workflow.Status(exchange.Status), target); err != nil {
			return err
		}

		if target == workflow.StatusApproved {
			reqLedger := ledger.Request{
				UserID:    exchange.UserID,
				Reference: fmt.Sprintf("exchange:%d", exchange.ID),
				Kind:      ledger.KindExchange,
				ActorID:   adminUser.ID,
			}
			if exchange.Direction == "sell" {
				reqLedger.Currency = ledger.CurrencyINR
				reqLedger.Delta = exchange.AmountInr
				reqLedger.Note = "Sold " + exchange.AmountUsdt.String() + " " + exchange.CryptoType
			} else {
				reqLedger.Currency = ledger.CurrencyUSDT
				reqLedger.Delta = exchange.AmountUsdt.Neg()
				reqLedger.Note = "Bought " + exchange.CryptoType + " to " + exchange.WalletAddress
			}

			svc := ledger.NewService(ledger.NewGormStore(tx))
			if _, err := svc.Apply(reqLedger); err != nil {
				return err
			}
		}

		now := time.Now()
		exchange.Status = string(target)
		exchange.AdminNotes = req.AdminNotes
		exchange.ApprovedBy = &adminUser.ID
		exchange.ApprovedAt = &now
		if err := tx.Save(&exchange).Error; err != nil {
			return err
		}

		return audit(tx, adminUser.ID, "exchange."+string(target), "crypto_exchange", exchange.ID, map[string]any{
			"direction":   exchange.Direction,
			"amount_usdt": exchange.AmountUsdt.String(),
			"user_id":     exchange.UserID,
		})
	})
	if txErr != nil {
		return reviewError(c, txErr)
	}

	metrics.Transitions.WithLabelValues(string(workflow.KindExchange), string(target)).Inc()
	return helpers.JSONSuccess(c, "Exchange "+string(target), exchange)
}
