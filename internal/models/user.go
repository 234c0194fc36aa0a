package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	UserTypeID     uint           `gorm:"not null;index" json:"user_type_id"`
	UserType       *UserType      `json:"user_type,omitempty"`
	DocumentTypeID uint           `gorm:"not null" json:"document_type_id"`
	DocumentType   *DocumentType  `json:"document_type,omitempty"`
	DocumentNumber string         `gorm:"uniqueIndex;not null" json:"document_number"`
	TokenVersion   int            `gorm:"default:1" json:"-"`
	Wallet         *Wallet        `json:"wallet,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsShopkeeper reports whether the user is a merchant account, which may
// receive transfers but never originate them.
func (u *User) IsShopkeeper() bool {
	return u.UserTypeID == UserTypeShopkeeper
}
