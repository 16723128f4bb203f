package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatus tracks whether a received check has cleared. It only feeds the
// upcoming-checks query and plays no part in balance derivation.
type CheckStatus string

const (
	CheckStatusPending CheckStatus = "pending"
	CheckStatusPaid    CheckStatus = "paid"
)

// Valid reports whether s is a known check status.
func (s CheckStatus) Valid() bool {
	return s == CheckStatusPending || s == CheckStatusPaid
}

// Transaction represents a single dated entry on an account's ledger.
// Balance is the cached running balance after this entry in canonical order;
// it is rewritten on every mutation of the owning account's transaction set.
//
// RowNumber is allocated from a per-account counter that never decreases, so
// numbers are unique over the account's lifetime. Chronological truth is
// still Date: the row number only breaks ties between same-date entries and
// serves as a display index.
type Transaction struct {
	ID           string
	AccountID    string
	RowNumber    int64
	Date         time.Time
	Amount       Amount
	CheckNumber  string
	Reference    string
	Description  string
	Counterparty string
	Balance      decimal.Decimal
	DueDate      *time.Time
	Status       CheckStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SortCanonical orders transactions ascending by date, breaking same-date
// ties by ascending row number.
func SortCanonical(txns []*Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if txns[i].Date.Equal(txns[j].Date) {
			return txns[i].RowNumber < txns[j].RowNumber
		}

		return txns[i].Date.Before(txns[j].Date)
	})
}
