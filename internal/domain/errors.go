package domain

import "errors"

var (
	// Not-found errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Validation errors
	ErrInvalidDirection   = errors.New("direction must be received or paid")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrConflictingAmount  = errors.New("transaction cannot carry both a debit and a credit")
	ErrMissingAmount      = errors.New("transaction must carry a debit or a credit")
	ErrInvalidAccountType = errors.New("account type must be current, savings or other")
	ErrInvalidCheckStatus = errors.New("check status must be pending or paid")
	ErrBalanceImmutable   = errors.New("current balance is derived and cannot be set directly")
)
