package admin

import (
	"encoding/json"
	"errors"

	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/ledger"
	"nrxpay/services/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type reviewRequest struct {
	AdminNotes string `json:"admin_notes"`
}

func audit(tx *gorm.DB, actorID uint, action, entity string, entityID uint, details map[string]any) error {
	payload, _ := json.Marshal(details)
	return tx.Create(&models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  datatypes.JSON(payload),
	}).Error
}

var errRecordNotFound = errors.New("record not found")

// reviewError maps the shared failure modes of approve/reject handlers to
// response codes.
func reviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errRecordNotFound):
		return helpers.JSONError(c, "RECORD_NOT_FOUND")
	case errors.Is(err, workflow.ErrTerminalState):
		return helpers.JSONError(c, "ALREADY_FINALIZED")
	case errors.Is(err, workflow.ErrInvalidTransition):
		return helpers.JSONError(c, "INVALID_STATUS_TRANSITION")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return helpers.JSONError(c, "INSUFFICIENT_USER_BALANCE")
	default:
		return helpers.JSONError(c, "FAILED_TO_UPDATE_RECORD")
	}
}
