package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
)

const defaultAccountCacheTTL = 5 * time.Minute

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	idGen       IDGenerator
	cache       Cache
	cacheTTL    time.Duration
	metrics     MetricsRecorder
}

// NewAccountUseCase creates a new AccountUseCase. cache and metrics may be
// nil; a cacheTTL of 0 falls back to the default.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	idGen IDGenerator,
	cache Cache,
	cacheTTL time.Duration,
	metrics MetricsRecorder,
) *AccountUseCase {
	if cacheTTL <= 0 {
		cacheTTL = defaultAccountCacheTTL
	}

	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		idGen:       idGen,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     metrics,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Number         string
	BankName       string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account with its current balance initialized
// to the initial balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Number:         input.Number,
		BankName:       input.BankName,
		Type:           input.Type,
		InitialBalance: input.InitialBalance,
		CurrentBalance: input.InitialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncMutation("create_account")
	}

	return account, nil
}

// GetAccount retrieves an account by ID, serving from cache when possible.
// Reads never trigger a recompute: the stored current balance is already
// consistent with the transaction set.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, accountCacheKey(id)); err == nil {
			var account domain.Account
			if err := json.Unmarshal(raw, &account); err == nil {
				return &account, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(account); err == nil {
			_ = uc.cache.Set(ctx, accountCacheKey(id), raw, uc.cacheTTL)
		}
	}

	return account, nil
}

// UpdateAccountInput represents a partial update of descriptive fields.
// The current balance is derived-only and cannot be updated here.
type UpdateAccountInput struct {
	Number   *string
	BankName *string
	Type     *domain.AccountType
}

// UpdateAccount updates descriptive fields only. It never touches balances
// and therefore never triggers a recompute.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Number != nil {
		account.Number = *input.Number
	}
	if input.BankName != nil {
		account.BankName = *input.BankName
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, domain.ErrInvalidAccountType
		}
		account.Type = *input.Type
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)

	if uc.metrics != nil {
		uc.metrics.IncMutation("update_account")
	}

	return account, nil
}

// DeleteAccount removes the account and all its transactions. The account
// row is locked first so the delete serializes with in-flight mutations on
// the same account.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id); err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.invalidate(ctx, id)

	if uc.metrics != nil {
		uc.metrics.IncMutation("delete_account")
	}

	return nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}

func (uc *AccountUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, accountCacheKey(id))
	}
}

func accountCacheKey(id string) string {
	return "account:" + id
}
