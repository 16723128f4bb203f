package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kaveh/bankbook/internal/domain"
	"github.com/kaveh/bankbook/internal/usecase"
	"github.com/kaveh/bankbook/internal/usecase/mocks"
)

func newAccountUseCase(repo *mocks.MockAccountRepository, cache usecase.Cache) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(), repo, mocks.NewMockIDGenerator(), cache, 0, nil,
	)
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name: "current balance starts at initial balance",
			input: usecase.CreateAccountInput{
				Number:         "0102030405",
				BankName:       "Mellat",
				Type:           domain.AccountTypeCurrent,
				InitialBalance: decimal.NewFromInt(50_000_000),
			},
		},
		{
			name: "zero initial balance",
			input: usecase.CreateAccountInput{
				Number:   "777",
				BankName: "Saman",
				Type:     domain.AccountTypeSavings,
			},
		},
		{
			name: "unknown account type rejected",
			input: usecase.CreateAccountInput{
				Number:   "888",
				BankName: "Saman",
				Type:     domain.AccountType("checking"),
			},
			wantErr: domain.ErrInvalidAccountType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			uc := newAccountUseCase(repo, nil)

			account, err := uc.CreateAccount(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.input.Number, account.Number)
			require.True(t, account.CurrentBalance.Equal(tt.input.InitialBalance))

			stored, err := repo.GetByID(context.Background(), account.ID)
			require.NoError(t, err)
			require.True(t, stored.CurrentBalance.Equal(tt.input.InitialBalance))
		})
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.Account{
		ID:       "acc-1",
		BankName: "Mellat",
		Type:     domain.AccountTypeCurrent,
	}))

	uc := newAccountUseCase(repo, nil)

	account, err := uc.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Equal(t, "Mellat", account.BankName)

	_, err = uc.GetAccount(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_GetAccountCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cached := &domain.Account{ID: "acc-1", BankName: "Saman", Type: domain.AccountTypeSavings}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "account:acc-1").Return(raw, nil)

	// Repository is empty: a hit must be served entirely from cache.
	uc := newAccountUseCase(mocks.NewMockAccountRepository(), cache)

	account, err := uc.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Equal(t, "Saman", account.BankName)
}

func TestAccountUseCase_GetAccountCacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAccountRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.Account{
		ID:   "acc-1",
		Type: domain.AccountTypeOther,
	}))

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "account:acc-1").Return(nil, usecase.ErrCacheMiss)
	cache.EXPECT().Set(gomock.Any(), "account:acc-1", gomock.Any(), gomock.Any()).Return(nil)

	uc := newAccountUseCase(repo, cache)

	account, err := uc.GetAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Equal(t, "acc-1", account.ID)
}

func TestAccountUseCase_UpdateAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	initial := decimal.NewFromInt(500)
	require.NoError(t, repo.Create(context.Background(), &domain.Account{
		ID:             "acc-1",
		Number:         "111",
		BankName:       "Mellat",
		Type:           domain.AccountTypeCurrent,
		InitialBalance: initial,
		CurrentBalance: initial,
	}))

	uc := newAccountUseCase(repo, nil)

	newName := "Saman"
	newType := domain.AccountTypeSavings
	account, err := uc.UpdateAccount(context.Background(), "acc-1", usecase.UpdateAccountInput{
		BankName: &newName,
		Type:     &newType,
	})
	require.NoError(t, err)
	require.Equal(t, "Saman", account.BankName)
	require.Equal(t, domain.AccountTypeSavings, account.Type)
	// Descriptive updates never touch the derived balance.
	require.True(t, account.CurrentBalance.Equal(initial))

	badType := domain.AccountType("checking")
	_, err = uc.UpdateAccount(context.Background(), "acc-1", usecase.UpdateAccountInput{Type: &badType})
	require.ErrorIs(t, err, domain.ErrInvalidAccountType)

	_, err = uc.UpdateAccount(context.Background(), "missing", usecase.UpdateAccountInput{BankName: &newName})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_DeleteAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.Account{
		ID:   "acc-1",
		Type: domain.AccountTypeCurrent,
	}))

	uc := newAccountUseCase(repo, nil)

	require.NoError(t, uc.DeleteAccount(context.Background(), "acc-1"))

	_, err := repo.GetByID(context.Background(), "acc-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.ErrorIs(t, uc.DeleteAccount(context.Background(), "missing"), domain.ErrAccountNotFound)
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.Account{ID: "1"}))
	require.NoError(t, repo.Create(context.Background(), &domain.Account{ID: "2"}))

	uc := newAccountUseCase(repo, nil)

	accounts, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 10})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}
