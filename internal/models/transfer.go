package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatusID enumerates the lifecycle of a transfer. PENDING is the
// only non-terminal status.
type TransferStatusID uint

const (
	TransferStatusPending      TransferStatusID = 1
	TransferStatusCompleted    TransferStatusID = 2
	TransferStatusUnauthorized TransferStatusID = 3
	TransferStatusError        TransferStatusID = 4
)

var transferStatusNames = map[TransferStatusID]string{
	TransferStatusPending:      "PENDING",
	TransferStatusCompleted:    "COMPLETED",
	TransferStatusUnauthorized: "UNAUTHORIZED",
	TransferStatusError:        "ERROR",
}

func (s TransferStatusID) String() string {
	if name, ok := transferStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is allowed.
func (s TransferStatusID) IsTerminal() bool {
	return s == TransferStatusCompleted || s == TransferStatusUnauthorized || s == TransferStatusError
}

type TransferStatus struct {
	ID   TransferStatusID `gorm:"primarykey" json:"id"`
	Name string           `gorm:"uniqueIndex;not null" json:"name"`
}

func DefaultTransferStatuses() []TransferStatus {
	statuses := make([]TransferStatus, 0, len(transferStatusNames))
	for _, id := range []TransferStatusID{TransferStatusPending, TransferStatusCompleted, TransferStatusUnauthorized, TransferStatusError} {
		statuses = append(statuses, TransferStatus{ID: id, Name: id.String()})
	}
	return statuses
}

type Transfer struct {
	ID                    uint             `gorm:"primarykey" json:"id"`
	PayerID               uint             `gorm:"not null;index" json:"payer_id"`
	Payer                 *User            `json:"payer,omitempty"`
	PayeeID               uint             `gorm:"not null;index" json:"payee_id"`
	Payee                 *User            `json:"payee,omitempty"`
	Amount                decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"amount"`
	TransferStatusID      TransferStatusID `gorm:"not null;default:1" json:"transfer_status_id"`
	TransferStatus        *TransferStatus  `json:"transfer_status,omitempty"`
	AuthorizationResponse JSON             `gorm:"type:text" json:"authorization_response,omitempty"`
	AuthorizedAt          *time.Time       `json:"authorized_at"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// Status returns the status name, e.g. "COMPLETED".
func (t *Transfer) Status() string {
	return t.TransferStatusID.String()
}
