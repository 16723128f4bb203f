package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kaveh/bankbook/internal/domain"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name      string
		direction domain.Direction
		value     decimal.Decimal
		wantErr   error
	}{
		{
			name:      "received credits the account",
			direction: domain.DirectionReceived,
			value:     decimal.NewFromInt(1000),
		},
		{
			name:      "paid debits the account",
			direction: domain.DirectionPaid,
			value:     decimal.NewFromInt(500),
		},
		{
			name:      "unknown direction rejected",
			direction: domain.Direction("refunded"),
			value:     decimal.NewFromInt(10),
			wantErr:   domain.ErrInvalidDirection,
		},
		{
			name:      "zero value rejected",
			direction: domain.DirectionReceived,
			value:     decimal.Zero,
			wantErr:   domain.ErrInvalidAmount,
		},
		{
			name:      "negative value rejected",
			direction: domain.DirectionPaid,
			value:     decimal.NewFromInt(-5),
			wantErr:   domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := domain.NewAmount(tt.direction, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.direction, amount.Direction())
			require.True(t, amount.Value().Equal(tt.value))
		})
	}
}

func TestAmountSides(t *testing.T) {
	received, err := domain.NewAmount(domain.DirectionReceived, decimal.NewFromInt(100))
	require.NoError(t, err)
	require.True(t, received.Credit().Equal(decimal.NewFromInt(100)))
	require.True(t, received.Debit().IsZero())

	paid, err := domain.NewAmount(domain.DirectionPaid, decimal.NewFromInt(40))
	require.NoError(t, err)
	require.True(t, paid.Debit().Equal(decimal.NewFromInt(40)))
	require.True(t, paid.Credit().IsZero())
}

func TestAmountFromColumns(t *testing.T) {
	tests := []struct {
		name          string
		debit, credit decimal.Decimal
		wantDirection domain.Direction
		wantErr       error
	}{
		{
			name:          "credit column set",
			debit:         decimal.Zero,
			credit:        decimal.NewFromInt(25),
			wantDirection: domain.DirectionReceived,
		},
		{
			name:          "debit column set",
			debit:         decimal.NewFromInt(75),
			credit:        decimal.Zero,
			wantDirection: domain.DirectionPaid,
		},
		{
			name:    "both columns set",
			debit:   decimal.NewFromInt(1),
			credit:  decimal.NewFromInt(1),
			wantErr: domain.ErrConflictingAmount,
		},
		{
			name:    "neither column set",
			debit:   decimal.Zero,
			credit:  decimal.Zero,
			wantErr: domain.ErrMissingAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := domain.AmountFromColumns(tt.debit, tt.credit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantDirection, amount.Direction())
		})
	}
}
