package models

import "time"

// Seeded lookup identifiers. The rows are created by repositories.SeedLookups
// and the ids are relied upon by business rules.
const (
	UserTypeCommon     uint = 1
	UserTypeShopkeeper uint = 2

	DocumentTypeCPF  uint = 1
	DocumentTypeCNPJ uint = 2
)

type UserType struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DocumentType struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultUserTypes returns the rows every installation starts with.
func DefaultUserTypes() []UserType {
	return []UserType{
		{ID: UserTypeCommon, Name: "COMMON", Description: "Regular user, can send and receive transfers"},
		{ID: UserTypeShopkeeper, Name: "SHOPKEEPER", Description: "Merchant, can only receive transfers"},
	}
}

func DefaultDocumentTypes() []DocumentType {
	return []DocumentType{
		{ID: DocumentTypeCPF, Name: "CPF", Description: "Individual taxpayer registry"},
		{ID: DocumentTypeCNPJ, Name: "CNPJ", Description: "Company taxpayer registry"},
	}
}

// Lookup is implemented by the editable reference rows.
type Lookup interface {
	Fields() (name, description string)
	SetFields(name, description string)
}

func (u *UserType) Fields() (string, string) { return u.Name, u.Description }

func (u *UserType) SetFields(name, description string) {
	u.Name = name
	u.Description = description
}

func (d *DocumentType) Fields() (string, string) { return d.Name, d.Description }

func (d *DocumentType) SetFields(name, description string) {
	d.Name = name
	d.Description = description
}
