package handlers

import (
	"simplepay/internal/services/auth"
	"simplepay/internal/utils"
	"simplepay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return response.Success(c, "Login successful", result)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return response.Success(c, "Authenticated user", user)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.UserContext(), claims.UserID); err != nil {
		return err
	}
	return response.Success(c, "Logged out", nil)
}
