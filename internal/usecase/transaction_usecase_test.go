package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kaveh/bankbook/internal/domain"
	"github.com/kaveh/bankbook/internal/usecase"
	"github.com/kaveh/bankbook/internal/usecase/mocks"
)

type ledgerFixture struct {
	accountRepo *mocks.MockAccountRepository
	txnRepo     *mocks.MockTransactionRepository
	txManager   *mocks.MockTransactionManager
	uc          *usecase.TransactionUseCase
}

func newLedgerFixture(t *testing.T, initialBalance int64) (*ledgerFixture, *domain.Account) {
	t.Helper()

	accountRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	txManager := mocks.NewMockTransactionManager()

	account := &domain.Account{
		ID:             "acc-1",
		Number:         "0102030405",
		BankName:       "Mellat",
		Type:           domain.AccountTypeCurrent,
		InitialBalance: decimal.NewFromInt(initialBalance),
		CurrentBalance: decimal.NewFromInt(initialBalance),
	}
	require.NoError(t, accountRepo.Create(context.Background(), account))

	uc := usecase.NewTransactionUseCase(
		txManager, accountRepo, txnRepo,
		mocks.NewMockIDGenerator(), nil, mocks.PassRetrier{}, nil,
	)

	return &ledgerFixture{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		txManager:   txManager,
		uc:          uc,
	}, account
}

func (f *ledgerFixture) create(t *testing.T, date time.Time, direction domain.Direction, value int64) *domain.Transaction {
	t.Helper()

	txn, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		AccountID: "acc-1",
		Date:      date,
		Direction: direction,
		Value:     decimal.NewFromInt(value),
	})
	require.NoError(t, err)

	return txn
}

func (f *ledgerFixture) currentBalance(t *testing.T) decimal.Decimal {
	t.Helper()

	account, err := f.accountRepo.GetByID(context.Background(), "acc-1")
	require.NoError(t, err)

	return account.CurrentBalance
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateTransactionComputesBalance(t *testing.T) {
	f, _ := newLedgerFixture(t, 1000)

	txn := f.create(t, day(1), domain.DirectionReceived, 500)

	require.Equal(t, int64(1), txn.RowNumber)
	require.True(t, txn.Balance.Equal(decimal.NewFromInt(1500)))
	require.True(t, f.currentBalance(t).Equal(decimal.NewFromInt(1500)))
	require.Equal(t, 1, f.txManager.Committed)
}

func TestCreateTransactionOutOfOrderReordersLedger(t *testing.T) {
	f, _ := newLedgerFixture(t, 50_000_000)

	a := f.create(t, day(10), domain.DirectionReceived, 10_000_000)
	b := f.create(t, day(13), domain.DirectionPaid, 5_000_000)
	require.True(t, a.Balance.Equal(decimal.NewFromInt(60_000_000)))
	require.True(t, b.Balance.Equal(decimal.NewFromInt(55_000_000)))

	// Backdated entry before A forces a full reorder.
	c := f.create(t, day(9), domain.DirectionReceived, 1_000_000)
	require.True(t, c.Balance.Equal(decimal.NewFromInt(51_000_000)))

	txns, err := f.uc.ListTransactions(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, txns, 3)
	require.Equal(t, c.ID, txns[0].ID)
	require.Equal(t, a.ID, txns[1].ID)
	require.Equal(t, b.ID, txns[2].ID)
	require.True(t, txns[0].Balance.Equal(decimal.NewFromInt(51_000_000)))
	require.True(t, txns[1].Balance.Equal(decimal.NewFromInt(61_000_000)))
	require.True(t, txns[2].Balance.Equal(decimal.NewFromInt(56_000_000)))
	require.True(t, f.currentBalance(t).Equal(decimal.NewFromInt(56_000_000)))
}

func TestDeleteTransactionRecomputes(t *testing.T) {
	f, _ := newLedgerFixture(t, 50_000_000)

	a := f.create(t, day(10), domain.DirectionReceived, 10_000_000)
	b := f.create(t, day(13), domain.DirectionPaid, 5_000_000)
	c := f.create(t, day(9), domain.DirectionReceived, 1_000_000)

	require.NoError(t, f.uc.DeleteTransaction(context.Background(), b.ID))

	txns, err := f.uc.ListTransactions(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Equal(t, c.ID, txns[0].ID)
	require.Equal(t, a.ID, txns[1].ID)
	require.True(t, txns[0].Balance.Equal(decimal.NewFromInt(51_000_000)))
	require.True(t, txns[1].Balance.Equal(decimal.NewFromInt(61_000_000)))
	require.True(t, f.currentBalance(t).Equal(decimal.NewFromInt(61_000_000)))
}

func TestUpdateTransactionDateReordersLedger(t *testing.T) {
	f, _ := newLedgerFixture(t, 1000)

	a := f.create(t, day(1), domain.DirectionReceived, 100)
	b := f.create(t, day(2), domain.DirectionPaid, 50)

	// Move A after B.
	newDate := day(3)
	updated, err := f.uc.UpdateTransaction(context.Background(), a.ID, usecase.UpdateTransactionInput{
		Date: &newDate,
	})
	require.NoError(t, err)
	require.True(t, updated.Balance.Equal(decimal.NewFromInt(1050)))

	txns, err := f.uc.ListTransactions(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Equal(t, b.ID, txns[0].ID)
	require.True(t, txns[0].Balance.Equal(decimal.NewFromInt(950)))
	require.Equal(t, a.ID, txns[1].ID)
	require.True(t, f.currentBalance(t).Equal(decimal.NewFromInt(1050)))
}

func TestUpdateTransactionAmount(t *testing.T) {
	f, _ := newLedgerFixture(t, 1000)

	a := f.create(t, day(1), domain.DirectionReceived, 100)

	newValue := decimal.NewFromInt(400)
	updated, err := f.uc.UpdateTransaction(context.Background(), a.ID, usecase.UpdateTransactionInput{
		Value: &newValue,
	})
	require.NoError(t, err)
	require.True(t, updated.Balance.Equal(decimal.NewFromInt(1400)))
	require.True(t, f.currentBalance(t).Equal(decimal.NewFromInt(1400)))
}

func TestCreateTransactionValidationLeavesStateUntouched(t *testing.T) {
	f, _ := newLedgerFixture(t, 1000)
	f.create(t, day(1), domain.DirectionReceived, 100)

	tests := []struct {
		name      string
		direction domain.Direction
		value     int64
		wantErr   error
	}{
		{
			name:      "unknown direction",
			direction: domain.Direction("transferred"),
			value:     100,
			wantErr:   domain.ErrInvalidDirection,
		},
		{
			name:      "non-positive value",
			direction: domain.DirectionPaid,
			value:     0,
			wantErr:   domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
				AccountID: "acc-1",
				Date:      day(2),
				Direction: tt.direction,
				Value:     decimal.NewFromInt(tt.value),
			})
			require.ErrorIs(t, err, tt.wantErr)

			// Rejected before any persistence: ledger unchanged.
			txns, err := f.uc.ListTransactions(context.Background(), "acc-1")
			require.NoError(t, err)
			require.Len(t, txns, 1)
			require.True(t, f.currentBalance(t).Equal(decimal.NewFromInt(1100)))
		})
	}
}

func TestCreateTransactionUnknownAccount(t *testing.T) {
	f, _ := newLedgerFixture(t, 1000)

	_, err := f.uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		AccountID: "missing",
		Date:      day(1),
		Direction: domain.DirectionReceived,
		Value:     decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Equal(t, 0, f.txManager.Committed)
}

func TestDeleteTransactionUnknownID(t *testing.T) {
	f, _ := newLedgerFixture(t, 1000)

	err := f.uc.DeleteTransaction(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestRowNumbersNotReusedAfterDeletion(t *testing.T) {
	f, _ := newLedgerFixture(t, 0)

	first := f.create(t, day(1), domain.DirectionReceived, 10)
	second := f.create(t, day(2), domain.DirectionReceived, 10)
	require.Equal(t, int64(1), first.RowNumber)
	require.Equal(t, int64(2), second.RowNumber)

	// Deleting the highest-numbered entry must not hand its number out
	// again.
	require.NoError(t, f.uc.DeleteTransaction(context.Background(), second.ID))

	third := f.create(t, day(3), domain.DirectionReceived, 10)
	require.Equal(t, int64(3), third.RowNumber)
}

func TestSameDateEntriesOrderedByRowNumber(t *testing.T) {
	f, _ := newLedgerFixture(t, 100)

	first := f.create(t, day(5), domain.DirectionReceived, 50)
	second := f.create(t, day(5), domain.DirectionPaid, 30)

	txns, err := f.uc.ListTransactions(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Equal(t, first.ID, txns[0].ID)
	require.Equal(t, second.ID, txns[1].ID)
	require.True(t, txns[0].Balance.Equal(decimal.NewFromInt(150)))
	require.True(t, txns[1].Balance.Equal(decimal.NewFromInt(120)))
}

func TestListTransactionsUnknownAccount(t *testing.T) {
	f, _ := newLedgerFixture(t, 0)

	_, err := f.uc.ListTransactions(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestMutationsReportedToMetricsAndCache(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	require.NoError(t, accountRepo.Create(context.Background(), &domain.Account{
		ID:             "acc-1",
		Type:           domain.AccountTypeCurrent,
		InitialBalance: decimal.Zero,
	}))

	recorded := make([]string, 0)
	metrics := recorderFunc(func(op string) { recorded = append(recorded, op) })

	cache := &spyCache{}

	uc := usecase.NewTransactionUseCase(
		mocks.NewMockTransactionManager(), accountRepo, txnRepo,
		mocks.NewMockIDGenerator(), cache, mocks.PassRetrier{}, metrics,
	)

	_, err := uc.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		AccountID: "acc-1",
		Date:      day(1),
		Direction: domain.DirectionReceived,
		Value:     decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.Equal(t, []string{"create_transaction"}, recorded)
	require.Equal(t, []string{"account:acc-1"}, cache.deleted)
}

type recorderFunc func(op string)

func (f recorderFunc) IncMutation(op string)         { f(op) }
func (f recorderFunc) ObserveRecompute(int, float64) {}

type spyCache struct {
	deleted []string
}

func (c *spyCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, usecase.ErrCacheMiss
}

func (c *spyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (c *spyCache) Delete(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	return nil
}
