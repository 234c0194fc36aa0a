package handlers

import (
	"simplepay/internal/services/transfer"
	"simplepay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes P2P transfer endpoints.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

// Create handles POST /api/transfers requests.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var req TransferRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tx, err := h.service.Transfer(c.UserContext(), transfer.Request{
		PayerID: req.PayerID,
		PayeeID: req.PayeeID,
		Amount:  req.Amount,
	})
	if err != nil {
		return err
	}
	return response.Created(c, "Transfer completed", tx)
}

// Show handles GET /api/transfers/:id requests.
func (h *TransferHandler) Show(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	tx, err := h.service.GetTransfer(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Transfer retrieved", tx)
}
