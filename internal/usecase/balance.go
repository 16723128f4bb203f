package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
)

// RecomputeBalances derives the running balance of every transaction by
// folding over the canonical (date, row number) order, starting from the
// account's initial balance. Each step adds the entry's credit and subtracts
// its debit.
//
// The recompute is deliberately not incremental: entries may be created or
// edited with a date earlier than existing entries, so any mutation forces a
// full resort and refold. It mutates the Balance field of the passed
// transactions in place and returns the per-row updates together with the
// closing balance, which becomes the account's current balance.
func RecomputeBalances(initialBalance decimal.Decimal, txns []*domain.Transaction) ([]BalanceUpdate, decimal.Decimal) {
	domain.SortCanonical(txns)

	balance := initialBalance
	updates := make([]BalanceUpdate, 0, len(txns))

	for _, t := range txns {
		balance = balance.Add(t.Amount.Credit()).Sub(t.Amount.Debit())
		t.Balance = balance
		updates = append(updates, BalanceUpdate{TransactionID: t.ID, Balance: balance})
	}

	return updates, balance
}
