package auth

import (
	"errors"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SetPinRequest struct {
	Pin    string `json:"pin"`
	OldPin string `json:"old_pin"`
}

// SetPin creates or changes the transaction PIN. Changing an existing PIN
// requires the old one.
func SetPin(c *fiber.Ctx) error {
	var req SetPinRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var pin models.UserPin
	err := database.DB.Where("user_id = ?", user.ID).First(&pin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, herr := helpers.HashPin(req.Pin)
		if herr != nil {
			return helpers.JSONError(c, "INVALID_PIN_FORMAT")
		}
		pin = models.UserPin{UserID: user.ID, PinHash: hash, IsActive: true}
		if err := database.DB.Create(&pin).Error; err != nil {
			return helpers.JSONError(c, "FAILED_TO_SET_PIN")
		}
	case err != nil:
		return helpers.JSONError(c, "FAILED_TO_SET_PIN")
	default:
		if !helpers.VerifyPin(pin.PinHash, req.OldPin) {
			return helpers.JSONError(c, "OLD_PIN_INCORRECT")
		}
		hash, herr := helpers.HashPin(req.Pin)
		if herr != nil {
			return helpers.JSONError(c, "INVALID_PIN_FORMAT")
		}
		pin.PinHash = hash
		pin.IsActive = true
		if err := database.DB.Save(&pin).Error; err != nil {
			return helpers.JSONError(c, "FAILED_TO_SET_PIN")
		}
	}

	return helpers.JSONSuccess(c, "PIN set successfully", fiber.Map{
		"user_id": user.ID,
	})
}

type VerifyPinRequest struct {
	Pin string `json:"pin"`
}

func VerifyPin(c *fiber.Ctx) error {
	var req VerifyPinRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	if !CheckPin(user.ID, req.Pin) {
		return helpers.JSONError(c, "INVALID_PIN")
	}

	return helpers.JSONSuccess(c, "PIN verified", fiber.Map{
		"user_id": user.ID,
	})
}

// CheckPin is the shared guard used by withdrawal submission.
func CheckPin(userID uint, pin string) bool {
	var row models.UserPin
	if err := database.DB.Where("user_id = ? AND is_active = true", userID).First(&row).Error; err != nil {
		return false
	}
	return helpers.VerifyPin(row.PinHash, pin)
}
