package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
	"github.com/kaveh/bankbook/internal/usecase"
)

const accountColumns = `id, number, bank_name, type, initial_balance, current_balance, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, number, bank_name, type, initial_balance, current_balance, row_number_seq, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)`,
		account.ID,
		account.Number,
		account.BankName,
		string(account.Type),
		decimalToNumeric(account.InitialBalance),
		decimalToNumeric(account.CurrentBalance),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByIDForUpdate retrieves an account with a FOR UPDATE lock. The lock is
// what serializes concurrent ledger mutations on the same account.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)

	return scanAccount(row)
}

// Update persists the descriptive fields of an account.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts SET number = $2, bank_name = $3, type = $4, updated_at = $5
		WHERE id = $1`,
		account.ID,
		account.Number,
		account.BankName,
		string(account.Type),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdateBalance sets the derived current balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE accounts SET current_balance = $2, updated_at = $3 WHERE id = $1`,
		id,
		decimalToNumeric(balance),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// NextRowNumber advances the account's persistent row-number counter and
// returns the freshly allocated number. The counter only ever grows, so
// deleting the highest-numbered transaction can never cause a number to be
// handed out twice.
func (r *AccountRepository) NextRowNumber(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var rowNumber int64
	err := pgxTx.QueryRow(ctx, `
		UPDATE accounts SET row_number_seq = row_number_seq + 1
		WHERE id = $1
		RETURNING row_number_seq`, id).Scan(&rowNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}

		return 0, err
	}

	return rowNumber, nil
}

// Delete removes the account; its transactions go with it through the
// ON DELETE CASCADE constraint.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccountValues(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	account, err := scanAccountValues(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

func scanAccountValues(row pgx.Row) (*domain.Account, error) {
	var (
		account        domain.Account
		accountType    string
		initialBalance pgtype.Numeric
		currentBalance pgtype.Numeric
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.Number,
		&account.BankName,
		&accountType,
		&initialBalance,
		&currentBalance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.InitialBalance = numericToDecimal(initialBalance)
	account.CurrentBalance = numericToDecimal(currentBalance)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
