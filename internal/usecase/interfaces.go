package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// BalanceUpdate is one row of a recomputed running-balance sequence.
type BalanceUpdate struct {
	TransactionID string
	Balance       decimal.Decimal
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	// NextRowNumber advances the account's row-number counter and returns
	// the freshly allocated number. The counter never decreases, so numbers
	// are not reused after deletions.
	NextRowNumber(ctx context.Context, tx Transaction, id string) (int64, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id string) error
	// ListByAccount returns every transaction of the account in canonical
	// (date, row number) order.
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	ListByAccountTx(ctx context.Context, tx Transaction, accountID string) ([]*domain.Transaction, error)
	// UpdateBalances rewrites the cached running balance of every listed
	// transaction as a single batched statement set.
	UpdateBalances(ctx context.Context, tx Transaction, updates []BalanceUpdate) error
	ListUpcomingChecks(ctx context.Context, accountID string, dueBefore time.Time) ([]*domain.Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier reruns an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// MetricsRecorder receives ledger instrumentation events.
type MetricsRecorder interface {
	IncMutation(operation string)
	ObserveRecompute(rows int, seconds float64)
}
