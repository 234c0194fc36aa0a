package utils

import (
	apperrors "simplepay/internal/errors"
	"simplepay/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserClaims extracts the user claims stored by the auth middleware.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return claims, nil
}
