package handlers

import (
	"simplepay/internal/services/lookup"
	"simplepay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// LookupHandler serves CRUD endpoints for user types and document types.
type LookupHandler[T any] struct {
	service lookup.Service[T]
	label   string
}

// NewLookupHandler creates a handler; label names the resource in messages,
// e.g. "User type".
func NewLookupHandler[T any](service lookup.Service[T], label string) *LookupHandler[T] {
	return &LookupHandler[T]{service: service, label: label}
}

func (h *LookupHandler[T]) List(c *fiber.Ctx) error {
	rows, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, h.label+"s retrieved", rows)
}

func (h *LookupHandler[T]) Create(c *fiber.Ctx) error {
	var req LookupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	row, err := h.service.Create(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return response.Created(c, h.label+" created", row)
}

func (h *LookupHandler[T]) Show(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	row, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, h.label+" retrieved", row)
}

func (h *LookupHandler[T]) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req UpdateLookupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	row, err := h.service.Update(c.UserContext(), id, req.Name, req.Description)
	if err != nil {
		return err
	}
	return response.Success(c, h.label+" updated", row)
}

func (h *LookupHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.Success(c, h.label+" deleted", nil)
}
