package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kaveh/bankbook/internal/domain"
)

func TestSortCanonical(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}

	txns := []*domain.Transaction{
		{ID: "c", Date: day(9), RowNumber: 3},
		{ID: "a", Date: day(2), RowNumber: 1},
		{ID: "b", Date: day(5), RowNumber: 2},
	}

	domain.SortCanonical(txns)

	require.Equal(t, "a", txns[0].ID)
	require.Equal(t, "b", txns[1].ID)
	require.Equal(t, "c", txns[2].ID)
}

func TestSortCanonicalSameDateTieBreak(t *testing.T) {
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	txns := []*domain.Transaction{
		{ID: "later", Date: date, RowNumber: 8},
		{ID: "earlier", Date: date, RowNumber: 2},
		{ID: "middle", Date: date, RowNumber: 5},
	}

	domain.SortCanonical(txns)

	require.Equal(t, "earlier", txns[0].ID)
	require.Equal(t, "middle", txns[1].ID)
	require.Equal(t, "later", txns[2].ID)
}

func TestAccountTypeValid(t *testing.T) {
	require.True(t, domain.AccountTypeCurrent.Valid())
	require.True(t, domain.AccountTypeSavings.Valid())
	require.True(t, domain.AccountTypeOther.Valid())
	require.False(t, domain.AccountType("checking").Valid())
}

func TestCheckStatusValid(t *testing.T) {
	require.True(t, domain.CheckStatusPending.Valid())
	require.True(t, domain.CheckStatusPaid.Valid())
	require.False(t, domain.CheckStatus("cleared").Valid())
}
