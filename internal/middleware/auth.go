// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"strings"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/services/auth"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles bearer token validation and user authentication.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler validates the bearer token and stores its claims in the request
// locals under "claims" and "userID". Revoked tokens are rejected.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(tokenString) == "" {
		return apperrors.ErrUnauthenticated
	}

	claims, err := m.authService.Authenticate(c.UserContext(), strings.TrimSpace(tokenString))
	if err != nil {
		return err
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}
