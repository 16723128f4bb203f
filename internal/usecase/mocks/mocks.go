package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kaveh/bankbook/internal/domain"
	"github.com/kaveh/bankbook/internal/usecase"
)

// MockAccountRepository is an in-memory mock of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	rowSeq   map[string]int64

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateFunc           func(ctx context.Context, account *domain.Account) error
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	NextRowNumberFunc    func(ctx context.Context, tx usecase.Transaction, id string) (int64, error)
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
		rowSeq:   make(map[string]int64),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.CurrentBalance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) NextRowNumber(ctx context.Context, tx usecase.Transaction, id string) (int64, error) {
	if m.NextRowNumberFunc != nil {
		return m.NextRowNumberFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return 0, domain.ErrAccountNotFound
	}
	m.rowSeq[id]++
	return m.rowSeq[id], nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

// MockTransactionRepository is an in-memory mock of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]*domain.Transaction

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Transaction, error)
	UpdateFunc             func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	DeleteFunc             func(ctx context.Context, tx usecase.Transaction, id string) error
	ListByAccountFunc      func(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	UpdateBalancesFunc     func(ctx context.Context, tx usecase.Transaction, updates []usecase.BalanceUpdate) error
	ListUpcomingChecksFunc func(ctx context.Context, accountID string, dueBefore time.Time) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		txns: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *txn
	m.txns[txn.ID] = &copied
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.txns[id]; ok {
		copied := *txn
		return &copied, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[txn.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	copied := *txn
	m.txns[txn.ID] = &copied
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txns[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.txns, id)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	txns := make([]*domain.Transaction, 0)
	for _, txn := range m.txns {
		if txn.AccountID == accountID {
			copied := *txn
			txns = append(txns, &copied)
		}
	}
	domain.SortCanonical(txns)
	return txns, nil
}

func (m *MockTransactionRepository) ListByAccountTx(ctx context.Context, tx usecase.Transaction, accountID string) ([]*domain.Transaction, error) {
	return m.ListByAccount(ctx, accountID)
}

func (m *MockTransactionRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, updates []usecase.BalanceUpdate) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, updates)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range updates {
		txn, ok := m.txns[u.TransactionID]
		if !ok {
			return domain.ErrTransactionNotFound
		}
		txn.Balance = u.Balance
	}
	return nil
}

func (m *MockTransactionRepository) ListUpcomingChecks(ctx context.Context, accountID string, dueBefore time.Time) ([]*domain.Transaction, error) {
	if m.ListUpcomingChecksFunc != nil {
		return m.ListUpcomingChecksFunc(ctx, accountID, dueBefore)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	checks := make([]*domain.Transaction, 0)
	for _, txn := range m.txns {
		if txn.AccountID != accountID || txn.Amount.Direction() != domain.DirectionReceived {
			continue
		}
		if txn.Status == domain.CheckStatusPaid || txn.DueDate == nil {
			continue
		}
		if txn.DueDate.After(dueBefore) {
			continue
		}
		copied := *txn
		checks = append(checks, &copied)
	}
	return checks, nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Begun      int
	Committed  int
	RolledBack int
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.Begun++
	return &MockTransaction{manager: m}, nil
}

// MockTransaction is a no-op transaction that records its outcome.
type MockTransaction struct {
	manager  *MockTransactionManager
	finished bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.manager != nil && !t.finished {
		t.manager.Committed++
	}
	t.finished = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.manager != nil && !t.finished {
		t.manager.RolledBack++
	}
	t.finished = true
	return nil
}

// MockIDGenerator generates sequential test IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%d", m.next)
}

// PassRetrier runs the operation once without retrying.
type PassRetrier struct{}

func (PassRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
