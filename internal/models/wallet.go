package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	UserID    uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// HasFunds reports whether the wallet can cover amount.
func (w *Wallet) HasFunds(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}
