package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaveh/bankbook/internal/domain"
	"github.com/kaveh/bankbook/internal/usecase"
)

const transactionColumns = `id, account_id, row_number, date, debit, credit, check_number, reference, description, counterparty, balance, due_date, status, created_at, updated_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create persists a new transaction inside the open unit of work.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (id, account_id, row_number, date, debit, credit, check_number, reference, description, counterparty, balance, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		txn.ID,
		txn.AccountID,
		txn.RowNumber,
		timeToPgTimestamptz(txn.Date),
		decimalToNumeric(txn.Amount.Debit()),
		decimalToNumeric(txn.Amount.Credit()),
		txn.CheckNumber,
		txn.Reference,
		txn.Description,
		txn.Counterparty,
		decimalToNumeric(txn.Balance),
		dueDateToPg(txn.DueDate),
		string(txn.Status),
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	return scanTransaction(row)
}

// GetByIDTx retrieves a transaction by ID inside the open unit of work.
func (r *TransactionRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	return scanTransaction(row)
}

// Update persists all mutable fields of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE transactions
		SET date = $2, debit = $3, credit = $4, check_number = $5, reference = $6,
		    description = $7, counterparty = $8, due_date = $9, status = $10, updated_at = $11
		WHERE id = $1`,
		txn.ID,
		timeToPgTimestamptz(txn.Date),
		decimalToNumeric(txn.Amount.Debit()),
		decimalToNumeric(txn.Amount.Credit()),
		txn.CheckNumber,
		txn.Reference,
		txn.Description,
		txn.Counterparty,
		dueDateToPg(txn.DueDate),
		string(txn.Status),
		timeToPgTimestamptz(txn.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction inside the open unit of work.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByAccount returns the account's transactions in canonical order.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1
		ORDER BY date, row_number`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListByAccountTx returns the account's transactions in canonical order
// inside the open unit of work. This is the read the recompute folds over.
func (r *TransactionRepository) ListByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1
		ORDER BY date, row_number`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// UpdateBalances rewrites the cached running balance of every listed row as
// one batch inside the open transaction, one round trip instead of one per
// row.
func (r *TransactionRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, updates []usecase.BalanceUpdate) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`UPDATE transactions SET balance = $2 WHERE id = $1`, u.TransactionID, decimalToNumeric(u.Balance))
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range updates {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// ListUpcomingChecks returns received, not-yet-paid entries due on or before
// the cutoff.
func (r *TransactionRepository) ListUpcomingChecks(ctx context.Context, accountID string, dueBefore time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1
		  AND credit > 0
		  AND status <> $2
		  AND due_date IS NOT NULL
		  AND due_date <= $3
		ORDER BY due_date, row_number`,
		accountID,
		string(domain.CheckStatusPaid),
		timeToPgTimestamptz(dueBefore),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	txns := make([]*domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransactionValues(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	txn, err := scanTransactionValues(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return txn, nil
}

func scanTransactionValues(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn       domain.Transaction
		date      pgtype.Timestamptz
		debit     pgtype.Numeric
		credit    pgtype.Numeric
		balance   pgtype.Numeric
		dueDate   pgtype.Timestamptz
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&txn.RowNumber,
		&date,
		&debit,
		&credit,
		&txn.CheckNumber,
		&txn.Reference,
		&txn.Description,
		&txn.Counterparty,
		&balance,
		&dueDate,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	amount, err := domain.AmountFromColumns(numericToDecimal(debit), numericToDecimal(credit))
	if err != nil {
		return nil, err
	}

	txn.Date = date.Time
	txn.Amount = amount
	txn.Balance = numericToDecimal(balance)
	txn.Status = domain.CheckStatus(status)
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time
	if dueDate.Valid {
		d := dueDate.Time
		txn.DueDate = &d
	}

	return &txn, nil
}

func dueDateToPg(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}
