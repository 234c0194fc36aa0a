// Package notification tells payees about the transfers they receive.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"simplepay/internal/models"

	"go.uber.org/zap"
)

// Message is the payload posted to the notifier.
type Message struct {
	UserID     uint   `json:"user_id"`
	TransferID uint   `json:"transfer_id"`
	Amount     string `json:"amount"`
	Message    string `json:"message"`
}

// Service sends transfer notifications over HTTP. Delivery is a single
// attempt; the caller decides what a failure means.
type Service struct {
	url        string
	httpClient *http.Client
	log        *zap.Logger
}

// NewService creates a new notification service.
func NewService(url string, timeout time.Duration, log *zap.Logger) *Service {
	return &Service{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// SendTransferNotification notifies the payee of a completed transfer.
func (s *Service) SendTransferNotification(ctx context.Context, transfer *models.Transfer) error {
	msg := Message{
		UserID:     transfer.PayeeID,
		TransferID: transfer.ID,
		Amount:     transfer.Amount.StringFixed(2),
		Message:    fmt.Sprintf("You received %s from user %d", transfer.Amount.StringFixed(2), transfer.PayerID),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notifier answered with status %d", resp.StatusCode)
	}

	s.log.Debug("payee notified", zap.Uint("user_id", msg.UserID), zap.Uint("transfer_id", msg.TransferID))
	return nil
}
