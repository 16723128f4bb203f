package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a bank account.
type AccountType string

const (
	AccountTypeCurrent AccountType = "current"
	AccountTypeSavings AccountType = "savings"
	AccountTypeOther   AccountType = "other"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCurrent, AccountTypeSavings, AccountTypeOther:
		return true
	}

	return false
}

// Account represents a tracked bank account. CurrentBalance is derived: it
// always equals the running balance of the account's canonically-last
// transaction, or InitialBalance when the account has none.
type Account struct {
	ID             string
	Number         string
	BankName       string
	Type           AccountType
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
