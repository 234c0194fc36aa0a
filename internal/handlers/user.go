package handlers

import (
	"simplepay/internal/services/user"
	"simplepay/internal/utils/pagination"
	"simplepay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userService.List(c.UserContext(), p.Offset, p.PerPage)
	if err != nil {
		return err
	}
	p.Total = total
	return response.Paginated(c, "Users retrieved", users, p.Meta())
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	created, err := h.userService.Create(c.UserContext(), user.CreateInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		UserTypeID:     req.UserTypeID,
		DocumentTypeID: req.DocumentTypeID,
		DocumentNumber: req.DocumentNumber,
		Balance:        req.Balance,
	})
	if err != nil {
		return err
	}
	return response.Created(c, "User created", created)
}

// Show handles GET /api/users/:id
func (h *UserHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	u, err := h.userService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "User retrieved", u)
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.userService.Update(c.UserContext(), id, user.UpdateInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		UserTypeID:     req.UserTypeID,
		DocumentTypeID: req.DocumentTypeID,
		DocumentNumber: req.DocumentNumber,
	})
	if err != nil {
		return err
	}
	return response.Success(c, "User updated", updated)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.Success(c, "User deleted", nil)
}
