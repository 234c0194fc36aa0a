package errors

import "net/http"

var (
	ErrPayerNotFound = &DomainError{
		Code:    "PAYER_NOT_FOUND",
		Message: "Payer not found",
		Status:  http.StatusNotFound,
	}
	ErrPayeeNotFound = ErrUserNotFound.WithMessage("Payee not found")
	ErrInvalidPayer  = &DomainError{
		Code:    "INVALID_PAYER",
		Message: "Shopkeepers cannot send transfers",
		Status:  http.StatusForbidden,
	}
	ErrInsufficientFunds = &DomainError{
		Code:    "INSUFFICIENT_FUNDS",
		Message: "Insufficient funds",
		Status:  http.StatusBadRequest,
	}
	ErrUnauthorizedTransfer = &DomainError{
		Code:    "UNAUTHORIZED_TRANSFER",
		Message: "Transfer not authorized",
		Status:  http.StatusForbidden,
	}
	ErrTransferFailed = &DomainError{
		Code:    "TRANSFER_FAILED",
		Message: "Transfer failed",
		Status:  http.StatusInternalServerError,
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "Wallet not found",
		Status:  http.StatusNotFound,
	}
)
