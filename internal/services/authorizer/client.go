// Package authorizer asks the external authorization service whether a
// transfer may proceed.
package authorizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"simplepay/internal/models"

	"github.com/shopspring/decimal"
)

// ErrUnavailable is returned when the authorizer gives no decision:
// transport failures, timeouts and any status other than 2xx or 403.
var ErrUnavailable = errors.New("authorizer unavailable")

// Request is the payload sent to the authorizer.
type Request struct {
	TransferID uint            `json:"transferId"`
	PayerID    uint            `json:"payerId"`
	PayeeID    uint            `json:"payeeId"`
	Amount     decimal.Decimal `json:"amount"`
}

// Result is the authorizer's decision together with the raw body, kept
// on the transfer for audit.
type Result struct {
	Authorized bool
	StatusCode int
	Response   models.JSON
}

type Authorizer interface {
	Authorize(ctx context.Context, req Request) (*Result, error)
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Authorize(ctx context.Context, req Request) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	// Only a 2xx or a 403 is a decision.
	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !success && resp.StatusCode != http.StatusForbidden {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	result := &Result{StatusCode: resp.StatusCode, Response: decodeBody(body)}
	result.Authorized = success && approved(result.Response)
	return result, nil
}

// decodeBody keeps non-JSON answers too, wrapped under "raw".
func decodeBody(body []byte) models.JSON {
	if len(bytes.TrimSpace(body)) == 0 {
		return models.JSON{}
	}
	var decoded models.JSON
	if err := json.Unmarshal(body, &decoded); err != nil {
		return models.JSON{"raw": string(body)}
	}
	return decoded
}

// approved accepts {"data":{"authorized":true}} and the
// {"data":{"authorization":true}} shape used by public authorizer mocks.
func approved(body models.JSON) bool {
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		return false
	}
	for _, key := range []string{"authorized", "authorization"} {
		if v, ok := data[key].(bool); ok {
			return v
		}
	}
	return false
}
