// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"simplepay/internal/models"
	"simplepay/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the clear-text password of every user created by CreateUser.
const Password = "secret123"

var seq atomic.Uint64

// NewDB opens a migrated SQLite database stored in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "simplepay.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user of the given type with a wallet holding balance.
func CreateUser(t testing.TB, db *gorm.DB, userTypeID uint, balance string) *models.User {
	t.Helper()

	n := seq.Add(1)
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	documentType := models.DocumentTypeCPF
	document := fmt.Sprintf("%011d", n)
	if userTypeID == models.UserTypeShopkeeper {
		documentType = models.DocumentTypeCNPJ
		document = fmt.Sprintf("%014d", n)
	}

	user := &models.User{
		Name:           fmt.Sprintf("User %d", n),
		Email:          fmt.Sprintf("user%d@example.com", n),
		Password:       string(hash),
		UserTypeID:     userTypeID,
		DocumentTypeID: documentType,
		DocumentNumber: document,
		TokenVersion:   1,
	}
	wallet := &models.Wallet{Balance: decimal.RequireFromString(balance)}

	repo := repositories.NewUserRepository(db, nil, nil)
	require.NoError(t, repo.Create(context.Background(), user, wallet))
	return user
}

// Balance reads the current wallet balance of a user.
func Balance(t testing.TB, db *gorm.DB, userID uint) decimal.Decimal {
	t.Helper()

	var wallet models.Wallet
	require.NoError(t, db.Where("user_id = ?", userID).First(&wallet).Error)
	return wallet.Balance
}
