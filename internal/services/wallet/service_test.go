package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "simplepay/internal/errors"
	"simplepay/internal/models"
	"simplepay/internal/repositories"
	"simplepay/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOperationDuration(operation string, d time.Duration) {
	m.Called(operation, d)
}
func (m *MockMetrics) RecordOperationResult(operation, result string) { m.Called(operation, result) }
func (m *MockMetrics) RecordError(operation, errType string)          { m.Called(operation, errType) }
func (m *MockMetrics) RecordTransfer(status string, amount decimal.Decimal) {
	m.Called(status, amount)
}
func (m *MockMetrics) RecordAuthorization(result string, d time.Duration) { m.Called(result, d) }
func (m *MockMetrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	m.Called(method, route, status, d)
}

// failingIncrementRepo fails every credit so the debit made before it in
// the same transaction has to be rolled back.
type failingIncrementRepo struct {
	repositories.WalletRepository
	err error
}

func (r failingIncrementRepo) Increment(context.Context, uint, decimal.Decimal) error {
	return r.err
}

func (r failingIncrementRepo) ExecuteInTransaction(ctx context.Context, fn func(repositories.WalletRepository) error) error {
	return r.WalletRepository.ExecuteInTransaction(ctx, func(tx repositories.WalletRepository) error {
		return fn(failingIncrementRepo{WalletRepository: tx, err: r.err})
	})
}

func TestWalletService_ValidateBalance(t *testing.T) {
	db := testutil.NewDB(t)
	metrics := new(MockMetrics)
	svc := NewService(repositories.NewWalletRepository(db), metrics, zap.NewNop())
	user := testutil.CreateUser(t, db, models.UserTypeCommon, "10.00")

	assert.NoError(t, svc.ValidateBalance(context.Background(), user.ID, decimal.NewFromInt(10)))

	metrics.On("RecordError", "validate_balance", "insufficient_funds").Return().Once()
	err := svc.ValidateBalance(context.Background(), user.ID, decimal.RequireFromString("10.01"))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	metrics.AssertExpectations(t)

	err = svc.ValidateBalance(context.Background(), 999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)
}

func TestWalletService_Move(t *testing.T) {
	boom := errors.New("disk full")

	tests := []struct {
		name        string
		balance     string
		amount      string
		failCredit  bool
		wantErr     error
		wantPayer   string
		wantPayee   string
		wantResult  string
		wantErrType string
	}{
		{
			name:       "moves the exact amount",
			balance:    "100.00",
			amount:     "30.50",
			wantPayer:  "69.50",
			wantPayee:  "30.50",
			wantResult: "success",
		},
		{
			name:       "whole balance",
			balance:    "12.34",
			amount:     "12.34",
			wantPayer:  "0",
			wantPayee:  "12.34",
			wantResult: "success",
		},
		{
			name:        "insufficient funds under lock",
			balance:     "5.00",
			amount:      "5.01",
			wantErr:     apperrors.ErrInsufficientFunds,
			wantPayer:   "5.00",
			wantPayee:   "0",
			wantResult:  "failure",
			wantErrType: "INSUFFICIENT_FUNDS",
		},
		{
			name:        "credit failure rolls back the debit",
			balance:     "100.00",
			amount:      "40.00",
			failCredit:  true,
			wantErr:     boom,
			wantPayer:   "100.00",
			wantPayee:   "0",
			wantResult:  "failure",
			wantErrType: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			payer := testutil.CreateUser(t, db, models.UserTypeCommon, tt.balance)
			payee := testutil.CreateUser(t, db, models.UserTypeShopkeeper, "0")

			var repo repositories.WalletRepository = repositories.NewWalletRepository(db)
			if tt.failCredit {
				repo = failingIncrementRepo{WalletRepository: repo, err: boom}
			}

			metrics := new(MockMetrics)
			metrics.On("RecordOperationDuration", "wallet_move", mock.Anything).Return()
			metrics.On("RecordOperationResult", "wallet_move", tt.wantResult).Return()
			if tt.wantErrType != "" {
				metrics.On("RecordError", "wallet_move", tt.wantErrType).Return()
			}

			svc := NewService(repo, metrics, zap.NewNop())
			err := svc.Move(context.Background(), payer.ID, payee.ID, decimal.RequireFromString(tt.amount))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, decimal.RequireFromString(tt.wantPayer).Equal(testutil.Balance(t, db, payer.ID)))
			assert.True(t, decimal.RequireFromString(tt.wantPayee).Equal(testutil.Balance(t, db, payee.ID)))
			metrics.AssertExpectations(t)
		})
	}
}

func TestWalletService_MoveMissingWallet(t *testing.T) {
	db := testutil.NewDB(t)
	payer := testutil.CreateUser(t, db, models.UserTypeCommon, "10")
	svc := NewService(repositories.NewWalletRepository(db), nil, zap.NewNop())

	err := svc.Move(context.Background(), payer.ID, 404, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)
	assert.True(t, decimal.NewFromInt(10).Equal(testutil.Balance(t, db, payer.ID)))
}

func TestWalletService_MoveConcurrent(t *testing.T) {
	db := testutil.NewDB(t)
	// SQLite has no row locks; a single connection serializes the
	// transactions the way FOR UPDATE does on postgres.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	payer := testutil.CreateUser(t, db, models.UserTypeCommon, "100.00")
	payee := testutil.CreateUser(t, db, models.UserTypeShopkeeper, "5.00")
	svc := NewService(repositories.NewWalletRepository(db), nil, zap.NewNop())

	const workers = 25
	amount := decimal.RequireFromString("7.50")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.Move(context.Background(), payer.ID, payee.ID, amount)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperrors.ErrInsufficientFunds):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 100.00 covers 13 moves of 7.50 and leaves 2.50.
	assert.Equal(t, 13, succeeded)
	assert.Equal(t, workers-13, rejected)

	payerBalance := testutil.Balance(t, db, payer.ID)
	payeeBalance := testutil.Balance(t, db, payee.ID)
	assert.False(t, payerBalance.IsNegative())
	assert.True(t, decimal.RequireFromString("2.50").Equal(payerBalance), payerBalance.String())
	assert.True(t, decimal.RequireFromString("102.50").Equal(payeeBalance), payeeBalance.String())
	assert.True(t, decimal.RequireFromString("105.00").Equal(payerBalance.Add(payeeBalance)))
}
