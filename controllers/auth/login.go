package auth

import (
	"os"
	"time"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.Phone == "" || req.Password == "" {
		return helpers.JSONError(c, "PHONE_AND_PASSWORD_REQUIRED")
	}

	var user models.User
	if err := database.DB.Where("phone = ? AND is_active = true", req.Phone).First(&user).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS")
	}

	claims := jwt.MapClaims{
		"sub": user.ID,
		"adm": user.IsAdmin,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_TOKEN")
	}

	return helpers.JSONSuccess(c, "Login successful", fiber.Map{
		"token":    signed,
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
	})
}

func Me(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	return helpers.JSONSuccess(c, "Profile retrieved successfully", fiber.Map{
		"user_id":       user.ID,
		"phone":         user.Phone,
		"full_name":     user.FullName,
		"referral_code": user.ReferralCode,
		"referred_by":   user.ReferredBy,
		"is_admin":      user.IsAdmin,
	})
}
