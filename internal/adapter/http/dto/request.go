package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
	"github.com/kaveh/bankbook/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Number         string          `json:"number"`
	BankName       string          `json:"bank_name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Number:         r.Number,
		BankName:       r.BankName,
		Type:           domain.AccountType(r.Type),
		InitialBalance: r.InitialBalance,
	}
}

// UpdateAccountRequest represents a partial update of an account's
// descriptive fields. The current balance is derived from the ledger and
// rejected if a client tries to set it.
type UpdateAccountRequest struct {
	Number         *string          `json:"number"`
	BankName       *string          `json:"bank_name"`
	Type           *string          `json:"type"`
	CurrentBalance *decimal.Decimal `json:"current_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() (usecase.UpdateAccountInput, error) {
	if r.CurrentBalance != nil {
		return usecase.UpdateAccountInput{}, domain.ErrBalanceImmutable
	}
	input := usecase.UpdateAccountInput{
		Number:   r.Number,
		BankName: r.BankName,
	}
	if r.Type != nil {
		t := domain.AccountType(*r.Type)
		input.Type = &t
	}
	return input, nil
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Date         time.Time       `json:"date"`
	Direction    string          `json:"direction"`
	Value        decimal.Decimal `json:"value"`
	CheckNumber  string          `json:"check_number,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Status       string          `json:"status,omitempty"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *CreateTransactionRequest) ToUseCaseInput(accountID string) usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		AccountID:    accountID,
		Date:         r.Date,
		Direction:    domain.Direction(r.Direction),
		Value:        r.Value,
		CheckNumber:  r.CheckNumber,
		Reference:    r.Reference,
		Description:  r.Description,
		Counterparty: r.Counterparty,
		DueDate:      r.DueDate,
		Status:       domain.CheckStatus(r.Status),
	}
}

// UpdateTransactionRequest represents a partial update of a transaction.
// The running balance is derived and rejected if a client tries to set it.
type UpdateTransactionRequest struct {
	Date         *time.Time       `json:"date"`
	Direction    *string          `json:"direction"`
	Value        *decimal.Decimal `json:"value"`
	CheckNumber  *string          `json:"check_number"`
	Reference    *string          `json:"reference"`
	Description  *string          `json:"description"`
	Counterparty *string          `json:"counterparty"`
	DueDate      *time.Time       `json:"due_date"`
	Status       *string          `json:"status"`
	Balance      *decimal.Decimal `json:"balance"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() (usecase.UpdateTransactionInput, error) {
	if r.Balance != nil {
		return usecase.UpdateTransactionInput{}, domain.ErrBalanceImmutable
	}
	input := usecase.UpdateTransactionInput{
		Date:         r.Date,
		Value:        r.Value,
		CheckNumber:  r.CheckNumber,
		Reference:    r.Reference,
		Description:  r.Description,
		Counterparty: r.Counterparty,
		DueDate:      r.DueDate,
	}
	if r.Direction != nil {
		d := domain.Direction(*r.Direction)
		input.Direction = &d
	}
	if r.Status != nil {
		s := domain.CheckStatus(*r.Status)
		input.Status = &s
	}
	return input, nil
}
