package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
)

// TransactionUseCase orchestrates ledger mutations. Every mutation runs as
// one atomic unit of work: lock the owning account row, apply the raw
// change, reload the full transaction set, recompute every running balance,
// rewrite them as a batch and refresh the account's current balance. The
// account-row lock serializes mutations per account; mutations on different
// accounts proceed independently.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	cache       Cache
	retrier     Retrier
	metrics     MetricsRecorder
}

// NewTransactionUseCase creates a new TransactionUseCase. cache, retrier and
// metrics may be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	cache Cache,
	retrier Retrier,
	metrics MetricsRecorder,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		cache:       cache,
		retrier:     retrier,
		metrics:     metrics,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	AccountID    string
	Date         time.Time
	Direction    domain.Direction
	Value        decimal.Decimal
	CheckNumber  string
	Reference    string
	Description  string
	Counterparty string
	DueDate      *time.Time
	Status       domain.CheckStatus
}

// CreateTransaction validates the amount, allocates a row number, persists
// the entry and recomputes the account's ledger. The returned transaction
// carries its correct running balance.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	amount, err := domain.NewAmount(input.Direction, input.Value)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.CheckStatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidCheckStatus
	}

	var created *domain.Transaction

	err = uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID); err != nil {
			return err
		}

		rowNumber, err := uc.accountRepo.NextRowNumber(ctx, tx, input.AccountID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		txn := &domain.Transaction{
			ID:           uc.idGen.Generate(),
			AccountID:    input.AccountID,
			RowNumber:    rowNumber,
			Date:         input.Date,
			Amount:       amount,
			CheckNumber:  input.CheckNumber,
			Reference:    input.Reference,
			Description:  input.Description,
			Counterparty: input.Counterparty,
			DueDate:      input.DueDate,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		refreshed, err := uc.recompute(ctx, tx, input.AccountID, txn.ID)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		created = refreshed

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.finishMutation(ctx, input.AccountID, "create_transaction")

	return created, nil
}

// UpdateTransactionInput represents a partial update of a transaction. When
// either Direction or Value is set, the resulting pair must form a valid
// amount.
type UpdateTransactionInput struct {
	Date         *time.Time
	Direction    *domain.Direction
	Value        *decimal.Decimal
	CheckNumber  *string
	Reference    *string
	Description  *string
	Counterparty *string
	DueDate      *time.Time
	Status       *domain.CheckStatus
}

// UpdateTransaction applies the change and recomputes the owning account's
// ledger, returning the refreshed entry.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	// Resolve the owning account outside the unit of work; the entry is
	// re-read under the account lock below.
	existing, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	accountID := existing.AccountID

	if input.Status != nil && !input.Status.Valid() {
		return nil, domain.ErrInvalidCheckStatus
	}

	var updated *domain.Transaction

	err = uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID); err != nil {
			return err
		}

		txn, err := uc.txnRepo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := applyTransactionPatch(txn, input); err != nil {
			return err
		}
		txn.UpdatedAt = time.Now().UTC()

		if err := uc.txnRepo.Update(ctx, tx, txn); err != nil {
			return err
		}

		refreshed, err := uc.recompute(ctx, tx, accountID, id)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = refreshed

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.finishMutation(ctx, accountID, "update_transaction")

	return updated, nil
}

// DeleteTransaction removes the entry and recomputes the owning account's
// ledger.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	existing, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	accountID := existing.AccountID

	err = uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID); err != nil {
			return err
		}

		if err := uc.txnRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		if _, err := uc.recompute(ctx, tx, accountID, ""); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.finishMutation(ctx, accountID, "delete_transaction")

	return nil
}

// ListTransactions returns all transactions of the account in canonical
// order with their cached running balances. Reads never recompute.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.txnRepo.ListByAccount(ctx, accountID)
}

// recompute reloads the account's full transaction set under the open
// transaction, refolds every running balance, batch-writes the corrected
// rows and refreshes the account's current balance. When keepID is
// non-empty, the matching refreshed entry is returned.
func (uc *TransactionUseCase) recompute(ctx context.Context, tx Transaction, accountID, keepID string) (*domain.Transaction, error) {
	start := time.Now()

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	txns, err := uc.txnRepo.ListByAccountTx(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	updates, closing := RecomputeBalances(account.InitialBalance, txns)

	if len(updates) > 0 {
		if err := uc.txnRepo.UpdateBalances(ctx, tx, updates); err != nil {
			return nil, err
		}
	}

	// The aggregate refresh always rides in the same unit of work so the
	// account's current balance cannot drift from the detail rows.
	if err := uc.accountRepo.UpdateBalance(ctx, tx, accountID, closing, time.Now().UTC()); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveRecompute(len(txns), time.Since(start).Seconds())
	}

	if keepID == "" {
		return nil, nil
	}

	for _, t := range txns {
		if t.ID == keepID {
			return t, nil
		}
	}

	return nil, domain.ErrTransactionNotFound
}

func (uc *TransactionUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *TransactionUseCase) finishMutation(ctx context.Context, accountID, operation string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, accountCacheKey(accountID))
	}
	if uc.metrics != nil {
		uc.metrics.IncMutation(operation)
	}
}

func applyTransactionPatch(txn *domain.Transaction, input UpdateTransactionInput) error {
	if input.Direction != nil || input.Value != nil {
		direction := txn.Amount.Direction()
		value := txn.Amount.Value()

		if input.Direction != nil {
			direction = *input.Direction
		}
		if input.Value != nil {
			value = *input.Value
		}

		amount, err := domain.NewAmount(direction, value)
		if err != nil {
			return err
		}
		txn.Amount = amount
	}

	if input.Date != nil {
		txn.Date = *input.Date
	}
	if input.CheckNumber != nil {
		txn.CheckNumber = *input.CheckNumber
	}
	if input.Reference != nil {
		txn.Reference = *input.Reference
	}
	if input.Description != nil {
		txn.Description = *input.Description
	}
	if input.Counterparty != nil {
		txn.Counterparty = *input.Counterparty
	}
	if input.DueDate != nil {
		txn.DueDate = input.DueDate
	}
	if input.Status != nil {
		txn.Status = *input.Status
	}

	return nil
}
