package middlewares

import (
	"os"
	"strings"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserAuth validates the bearer token and loads the active user into
// c.Locals("user").
func UserAuth(c *fiber.Ctx) error {
	user, err := userFromToken(c)
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, err.Error())
	}
	c.Locals("user", *user)
	return c.Next()
}

// AdminAuth is UserAuth plus the admin flag.
func AdminAuth(c *fiber.Ctx) error {
	user, err := userFromToken(c)
	if err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, err.Error())
	}
	if !user.IsAdmin {
		return helpers.JSONErrorStatus(c, fiber.StatusForbidden, "ADMIN_ONLY")
	}
	c.Locals("admin", *user)
	return c.Next()
}

func userFromToken(c *fiber.Ctx) (*models.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "MISSING_AUTHORIZATION_HEADER")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "INVALID_AUTHORIZATION_HEADER")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "INVALID_OR_EXPIRED_TOKEN")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "INVALID_TOKEN_CLAIMS")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "INVALID_TOKEN_PAYLOAD")
	}

	var user models.User
	if err := database.DB.Where("id = ? AND is_active = true", uint(sub)).First(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "USER_NOT_FOUND_OR_INACTIVE")
	}
	return &user, nil
}
