package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"simplepay/internal/config"
	"simplepay/internal/events"
	"simplepay/internal/metrics"
	"simplepay/internal/middleware"
	"simplepay/internal/models"
	"simplepay/internal/services/authorizer"
	"simplepay/internal/testutil"
	"simplepay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubAuthorizer struct {
	mu         sync.Mutex
	authorized bool
	err        error
	calls      []authorizer.Request
}

func (s *stubAuthorizer) Authorize(_ context.Context, req authorizer.Request) (*authorizer.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	status := http.StatusOK
	if !s.authorized {
		status = http.StatusForbidden
	}
	return &authorizer.Result{
		Authorized: s.authorized,
		StatusCode: status,
		Response:   models.JSON{"data": map[string]interface{}{"authorized": s.authorized}},
	}, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.TransferEvent
}

func (p *capturePublisher) Publish(_ context.Context, e events.TransferEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

type envelope struct {
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
	Meta    map[string]float64  `json:"meta"`
}

type testServer struct {
	app       *fiber.App
	db        *gorm.DB
	authz     *stubAuthorizer
	publisher *capturePublisher
	notified  chan []byte
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	notified := make(chan []byte, 10)
	notifier := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		notified <- body
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(notifier.Close)

	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("NOTIFIER_URL", notifier.URL)
	t.Setenv("LOGIN_RATE_LIMIT", "1000")
	cfg, err := config.Parse()
	require.NoError(t, err)

	log := zap.NewNop()
	prom := metrics.NewPrometheus()
	s := &testServer{
		db:        testutil.NewDB(t),
		authz:     &stubAuthorizer{authorized: true},
		publisher: &capturePublisher{},
		notified:  notified,
	}

	s.app = fiber.New(fiber.Config{ErrorHandler: response.ErrorHandler(log)})
	s.app.Use(middleware.Metrics(prom))
	SetupRoutes(s.app, Dependencies{
		Config:     cfg,
		DB:         s.db,
		Metrics:    prom,
		Publisher:  s.publisher,
		Log:        log,
		Authorizer: s.authz,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (s *testServer) login(t *testing.T, user *models.User) string {
	t.Helper()

	status, env := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    user.Email,
		"password": testutil.Password,
	})
	require.Equal(t, http.StatusOK, status)

	var result struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "Bearer", result.TokenType)
	return result.Token
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, models.UserTypeCommon, "10.00")

	status, env := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    user.Email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, env.Message)

	status, env = s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "password")

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token := s.login(t, user)

	status, env = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, user.Email, me.Email)
	require.NotNil(t, me.Wallet)
	assert.True(t, decimal.RequireFromString("10").Equal(me.Wallet.Balance))

	status, _ = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUserCRUD(t *testing.T) {
	s := newTestServer(t)
	admin := testutil.CreateUser(t, s.db, models.UserTypeCommon, "0")
	token := s.login(t, admin)

	payload := fiber.Map{
		"name":             "Maria Silva",
		"email":            "maria@example.com",
		"password":         "password123",
		"user_type_id":     models.UserTypeCommon,
		"document_type_id": models.DocumentTypeCPF,
		"document_number":  "98765432100",
		"balance":          "250.50",
	}
	status, env := s.do(t, http.MethodPost, "/api/users", token, payload)
	require.Equal(t, http.StatusCreated, status, env.Message)

	var created models.User
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "maria@example.com", created.Email)
	require.NotNil(t, created.Wallet)
	assert.True(t, decimal.RequireFromString("250.50").Equal(created.Wallet.Balance))
	assert.NotContains(t, string(env.Data), "password")

	// Same email and document again.
	status, env = s.do(t, http.MethodPost, "/api/users", token, payload)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The given data was invalid.", env.Message)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "document_number")

	status, env = s.do(t, http.MethodPost, "/api/users", token, fiber.Map{
		"name":             "Bad Balance",
		"email":            "bad@example.com",
		"password":         "password123",
		"user_type_id":     models.UserTypeCommon,
		"document_type_id": models.DocumentTypeCPF,
		"document_number":  "11111111111",
		"balance":          "-1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "balance")

	path := fmt.Sprintf("/api/users/%d", created.ID)
	status, env = s.do(t, http.MethodPut, path, token, fiber.Map{"name": "Maria S."})
	require.Equal(t, http.StatusOK, status)
	var updated models.User
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Maria S.", updated.Name)
	assert.Equal(t, "maria@example.com", updated.Email)

	status, env = s.do(t, http.MethodGet, "/api/users?page=1&per_page=1", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, env.Meta["total"])
	assert.EqualValues(t, 1, env.Meta["per_page"])
	assert.EqualValues(t, 2, env.Meta["last_page"])

	status, _ = s.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = s.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", env.Message)

	status, _ = s.do(t, http.MethodGet, "/api/users/abc", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLookupCRUD(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateUser(t, s.db, models.UserTypeCommon, "0")
	token := s.login(t, user)

	status, env := s.do(t, http.MethodGet, "/api/user-types", token, nil)
	require.Equal(t, http.StatusOK, status)
	var types []models.UserType
	require.NoError(t, json.Unmarshal(env.Data, &types))
	assert.Len(t, types, 2)

	status, env = s.do(t, http.MethodPost, "/api/document-types", token, fiber.Map{
		"name":        "PASSPORT",
		"description": "Foreign passport",
	})
	require.Equal(t, http.StatusCreated, status)
	var doc models.DocumentType
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "PASSPORT", doc.Name)

	status, env = s.do(t, http.MethodPost, "/api/document-types", token, fiber.Map{"name": "PASSPORT"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "name")

	path := fmt.Sprintf("/api/document-types/%d", doc.ID)
	status, env = s.do(t, http.MethodPut, path, token, fiber.Map{"description": "Passport"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "PASSPORT", doc.Name)
	assert.Equal(t, "Passport", doc.Description)

	status, _ = s.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = s.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Document type not found", env.Message)

	// The logged-in user references the common user type.
	status, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/user-types/%d", models.UserTypeCommon), token, nil)
	assert.Equal(t, http.StatusConflict, status)
}

type transferResponse struct {
	ID               uint                    `json:"id"`
	PayerID          uint                    `json:"payer_id"`
	PayeeID          uint                    `json:"payee_id"`
	Amount           decimal.Decimal         `json:"amount"`
	TransferStatusID models.TransferStatusID `json:"transfer_status_id"`
}

func TestTransferFlow(t *testing.T) {
	s := newTestServer(t)
	payer := testutil.CreateUser(t, s.db, models.UserTypeCommon, "100.00")
	payee := testutil.CreateUser(t, s.db, models.UserTypeShopkeeper, "0")
	token := s.login(t, payer)

	status, env := s.do(t, http.MethodPost, "/api/transfers", token, fiber.Map{
		"payer_id": payer.ID,
		"payee_id": payee.ID,
		"amount":   "40.25",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	var tr transferResponse
	require.NoError(t, json.Unmarshal(env.Data, &tr))
	assert.Equal(t, models.TransferStatusCompleted, tr.TransferStatusID)
	assert.True(t, decimal.RequireFromString("40.25").Equal(tr.Amount))
	assert.True(t, decimal.RequireFromString("59.75").Equal(testutil.Balance(t, s.db, payer.ID)))
	assert.True(t, decimal.RequireFromString("40.25").Equal(testutil.Balance(t, s.db, payee.ID)))

	select {
	case body := <-s.notified:
		assert.Contains(t, string(body), fmt.Sprintf(`"transfer_id":%d`, tr.ID))
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
	require.Len(t, s.publisher.events, 1)
	assert.Equal(t, events.TransferCompleted, s.publisher.events[0].Type)

	status, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/transfers/%d", tr.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	var shown transferResponse
	require.NoError(t, json.Unmarshal(env.Data, &shown))
	assert.Equal(t, tr.ID, shown.ID)

	status, _ = s.do(t, http.MethodGet, "/api/transfers/999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTransferRejections(t *testing.T) {
	s := newTestServer(t)
	payer := testutil.CreateUser(t, s.db, models.UserTypeCommon, "10.00")
	payee := testutil.CreateUser(t, s.db, models.UserTypeCommon, "0")
	shop := testutil.CreateUser(t, s.db, models.UserTypeShopkeeper, "50.00")
	token := s.login(t, payer)

	tests := []struct {
		name   string
		body   fiber.Map
		status int
		field  string
	}{
		{"zero amount", fiber.Map{"payer_id": payer.ID, "payee_id": payee.ID, "amount": "0"}, http.StatusUnprocessableEntity, "amount"},
		{"half cent", fiber.Map{"payer_id": payer.ID, "payee_id": payee.ID, "amount": "0.005"}, http.StatusUnprocessableEntity, "amount"},
		{"sub-cent precision", fiber.Map{"payer_id": payer.ID, "payee_id": payee.ID, "amount": "9.999"}, http.StatusUnprocessableEntity, "amount"},
		{"same user", fiber.Map{"payer_id": payer.ID, "payee_id": payer.ID, "amount": "1"}, http.StatusUnprocessableEntity, "payee_id"},
		{"missing payer", fiber.Map{"payee_id": payee.ID, "amount": "1"}, http.StatusUnprocessableEntity, "payer_id"},
		{"shopkeeper payer", fiber.Map{"payer_id": shop.ID, "payee_id": payee.ID, "amount": "1"}, http.StatusForbidden, ""},
		{"insufficient funds", fiber.Map{"payer_id": payer.ID, "payee_id": payee.ID, "amount": "10.01"}, http.StatusBadRequest, ""},
		{"unknown payee", fiber.Map{"payer_id": payer.ID, "payee_id": 9999, "amount": "1"}, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.do(t, http.MethodPost, "/api/transfers", token, tt.body)
			assert.Equal(t, tt.status, status, env.Message)
			if tt.field != "" {
				assert.Contains(t, env.Errors, tt.field)
			}
		})
	}

	assert.Empty(t, s.authz.calls)
	assert.True(t, decimal.RequireFromString("10").Equal(testutil.Balance(t, s.db, payer.ID)))
}

func TestTransferUnauthorized(t *testing.T) {
	s := newTestServer(t)
	s.authz.authorized = false
	payer := testutil.CreateUser(t, s.db, models.UserTypeCommon, "10.00")
	payee := testutil.CreateUser(t, s.db, models.UserTypeCommon, "0")
	token := s.login(t, payer)

	status, env := s.do(t, http.MethodPost, "/api/transfers", token, fiber.Map{
		"payer_id": payer.ID,
		"payee_id": payee.ID,
		"amount":   "5",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Transfer not authorized", env.Message)
	assert.True(t, decimal.RequireFromString("10").Equal(testutil.Balance(t, s.db, payer.ID)))

	var stored models.Transfer
	require.NoError(t, s.db.Last(&stored).Error)
	assert.Equal(t, models.TransferStatusUnauthorized, stored.TransferStatusID)
	require.Len(t, s.publisher.events, 1)
	assert.Equal(t, events.TransferUnauthorized, s.publisher.events[0].Type)
}

func TestTransferAuthorizerUnavailable(t *testing.T) {
	s := newTestServer(t)
	s.authz.err = authorizer.ErrUnavailable
	payer := testutil.CreateUser(t, s.db, models.UserTypeCommon, "10.00")
	payee := testutil.CreateUser(t, s.db, models.UserTypeCommon, "0")
	token := s.login(t, payer)

	status, env := s.do(t, http.MethodPost, "/api/transfers", token, fiber.Map{
		"payer_id": payer.ID,
		"payee_id": payee.ID,
		"amount":   "5",
	})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Transfer failed", env.Message)

	var stored models.Transfer
	require.NoError(t, s.db.Last(&stored).Error)
	assert.Equal(t, models.TransferStatusError, stored.TransferStatusID)
}

func TestMockEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/api/mock/authorize", "", fiber.Map{"payerId": 1})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"authorized":true}`, string(env.Data))

	status, env = s.do(t, http.MethodPost, "/api/mock/notify", "", fiber.Map{"user_id": 1, "message": "hi"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Notification sent", env.Message)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `simplepay_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
