package validation

import "github.com/shopspring/decimal"

const (
	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxNameLength        = 255
	MaxDescriptionLength = 500

	// Document lengths, digits only
	CPFLength  = 11
	CNPJLength = 14

	// MoneyDecimalPlaces matches the scale of the decimal(15,2) columns.
	MoneyDecimalPlaces = 2
)

// MinTransferAmount is the smallest amount a transfer may move.
var MinTransferAmount = decimal.New(1, -MoneyDecimalPlaces)

// IsMoney reports whether d can be stored without rounding.
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyDecimalPlaces))
}
