package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	MockModeApprove = "approve"
	MockModeDeny    = "deny"
)

// MockHandler simulates the external authorizer and notifier so the API
// can run without them.
type MockHandler struct {
	mode string
	log  *zap.Logger
}

func NewMockHandler(mode string, log *zap.Logger) *MockHandler {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != MockModeDeny {
		mode = MockModeApprove
	}
	return &MockHandler{mode: mode, log: log}
}

// Authorize handles POST /api/mock/authorize
func (h *MockHandler) Authorize(c *fiber.Ctx) error {
	if h.mode == MockModeDeny {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    fiber.Map{"authorized": false},
		})
	}
	return c.JSON(fiber.Map{
		"message": "Authorized",
		"data":    fiber.Map{"authorized": true},
	})
}

// Notify handles POST /api/mock/notify
func (h *MockHandler) Notify(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	h.log.Info("mock notification received", zap.Any("payload", body))
	return c.JSON(fiber.Map{
		"message": "Notification sent",
		"data":    fiber.Map{"sent": true},
	})
}
