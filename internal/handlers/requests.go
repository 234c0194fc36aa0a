package handlers

import (
	"strconv"

	"simplepay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Name           string          `json:"name" validate:"required,name"`
	Email          string          `json:"email" validate:"required,email,max=255"`
	Password       string          `json:"password" validate:"required,password"`
	UserTypeID     uint            `json:"user_type_id" validate:"required"`
	DocumentTypeID uint            `json:"document_type_id" validate:"required"`
	DocumentNumber string          `json:"document_number" validate:"required,max=20"`
	Balance        decimal.Decimal `json:"balance" validate:"gte=0,money"`
}

type UpdateUserRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,name"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Password       *string `json:"password" validate:"omitempty,password"`
	UserTypeID     *uint   `json:"user_type_id" validate:"omitempty,gt=0"`
	DocumentTypeID *uint   `json:"document_type_id" validate:"omitempty,gt=0"`
	DocumentNumber *string `json:"document_number" validate:"omitempty,min=1,max=20"`
}

type LookupRequest struct {
	Name        string `json:"name" validate:"required,name"`
	Description string `json:"description" validate:"description"`
}

type UpdateLookupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,name"`
	Description *string `json:"description" validate:"omitempty,description"`
}

type TransferRequest struct {
	PayerID uint            `json:"payer_id" validate:"required"`
	PayeeID uint            `json:"payee_id" validate:"required,nefield=PayerID"`
	Amount  decimal.Decimal `json:"amount" validate:"gte=0.01,money"`
}

// bind decodes the JSON body into req and validates it.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return validation.Struct(req)
}

// paramID reads a positive numeric :id route parameter.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusNotFound, "Resource not found")
	}
	return uint(id), nil
}
