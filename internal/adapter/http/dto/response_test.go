package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
)

func TestTransactionFromDomainSplitsAmount(t *testing.T) {
	amount, err := domain.NewAmount(domain.DirectionPaid, decimal.RequireFromString("5000000"))
	if err != nil {
		t.Fatalf("failed to build amount: %v", err)
	}

	txn := &domain.Transaction{
		ID:        "txn-1",
		AccountID: "acc-1",
		RowNumber: 2,
		Date:      time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
		Amount:    amount,
		Balance:   decimal.RequireFromString("55000000"),
		Status:    domain.CheckStatusPending,
	}

	resp := TransactionFromDomain(txn)

	if resp.Direction != "paid" {
		t.Fatalf("expected paid direction, got %s", resp.Direction)
	}
	if !resp.Debit.Equal(amount.Value()) {
		t.Fatalf("expected debit %s, got %s", amount.Value(), resp.Debit)
	}
	if !resp.Credit.IsZero() {
		t.Fatalf("expected zero credit, got %s", resp.Credit)
	}
	if !resp.Balance.Equal(txn.Balance) {
		t.Fatalf("expected balance %s, got %s", txn.Balance, resp.Balance)
	}
}

func TestAccountsFromDomainPreservesOrder(t *testing.T) {
	accounts := []*domain.Account{
		{ID: "acc-1"},
		{ID: "acc-2"},
		{ID: "acc-3"},
	}

	resp := AccountsFromDomain(accounts)

	if len(resp) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(resp))
	}
	for i, a := range accounts {
		if resp[i].ID != a.ID {
			t.Fatalf("expected %s at position %d, got %s", a.ID, i, resp[i].ID)
		}
	}
}
