package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	BankName       string          `json:"bank_name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Number:         a.Number,
		BankName:       a.BankName,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	RowNumber    int64           `json:"row_number"`
	Date         time.Time       `json:"date"`
	Direction    string          `json:"direction"`
	Value        decimal.Decimal `json:"value"`
	Credit       decimal.Decimal `json:"credit"`
	Debit        decimal.Decimal `json:"debit"`
	CheckNumber  string          `json:"check_number,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	Description  string          `json:"description,omitempty"`
	Counterparty string          `json:"counterparty,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		AccountID:    t.AccountID,
		RowNumber:    t.RowNumber,
		Date:         t.Date,
		Direction:    string(t.Amount.Direction()),
		Value:        t.Amount.Value(),
		Credit:       t.Amount.Credit(),
		Debit:        t.Amount.Debit(),
		CheckNumber:  t.CheckNumber,
		Reference:    t.Reference,
		Description:  t.Description,
		Counterparty: t.Counterparty,
		Balance:      t.Balance,
		DueDate:      t.DueDate,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListTransactionsResponse wraps an account's ledger in canonical order.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
