package domain

import "github.com/shopspring/decimal"

// Direction tells which side of the ledger a transaction sits on.
type Direction string

const (
	// DirectionReceived credits the account.
	DirectionReceived Direction = "received"
	// DirectionPaid debits the account.
	DirectionPaid Direction = "paid"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionReceived || d == DirectionPaid
}

// Amount couples a direction with a positive value. A transaction can never
// carry both a debit and a credit, or neither: the invalid states are
// unrepresentable once an Amount has been constructed.
type Amount struct {
	direction Direction
	value     decimal.Decimal
}

// NewAmount builds an Amount, rejecting unknown directions and non-positive
// values.
func NewAmount(direction Direction, value decimal.Decimal) (Amount, error) {
	if !direction.Valid() {
		return Amount{}, ErrInvalidDirection
	}
	if value.LessThanOrEqual(decimal.Zero) {
		return Amount{}, ErrInvalidAmount
	}

	return Amount{direction: direction, value: value}, nil
}

// AmountFromColumns rebuilds an Amount from split debit/credit storage
// columns.
func AmountFromColumns(debit, credit decimal.Decimal) (Amount, error) {
	switch {
	case debit.IsPositive() && credit.IsPositive():
		return Amount{}, ErrConflictingAmount
	case credit.IsPositive():
		return Amount{direction: DirectionReceived, value: credit}, nil
	case debit.IsPositive():
		return Amount{direction: DirectionPaid, value: debit}, nil
	default:
		return Amount{}, ErrMissingAmount
	}
}

// Direction returns the side of the ledger the amount sits on.
func (a Amount) Direction() Direction {
	return a.direction
}

// Value returns the positive amount value.
func (a Amount) Value() decimal.Decimal {
	return a.value
}

// Credit returns the credited value, zero for paid amounts.
func (a Amount) Credit() decimal.Decimal {
	if a.direction == DirectionReceived {
		return a.value
	}

	return decimal.Zero
}

// Debit returns the debited value, zero for received amounts.
func (a Amount) Debit() decimal.Decimal {
	if a.direction == DirectionPaid {
		return a.value
	}

	return decimal.Zero
}
