package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

type HealthHandler struct {
	database Checker
	redis    Checker
}

// NewHealthHandler creates the handler; redis may be nil when the cache is
// disabled.
func NewHealthHandler(database, redis Checker) *HealthHandler {
	return &HealthHandler{database: database, redis: redis}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{}

	if err := h.database(ctx); err != nil {
		services["database"] = "unavailable"
		status = fiber.StatusServiceUnavailable
	} else {
		services["database"] = "connected"
	}

	switch {
	case h.redis == nil:
		services["redis"] = "disabled"
	case h.redis(ctx) != nil:
		// The cache is optional; a redis outage only degrades the API.
		services["redis"] = "unavailable"
	default:
		services["redis"] = "connected"
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "down"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"services": services,
	})
}
