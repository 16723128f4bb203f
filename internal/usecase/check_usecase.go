package usecase

import (
	"context"
	"time"

	"github.com/kaveh/bankbook/internal/domain"
)

// CheckUseCase answers the upcoming-checks query: received entries that have
// not cleared yet and fall due within a window. It reads transaction records
// but never touches the balance invariant.
type CheckUseCase struct {
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	defaultDays int
}

// NewCheckUseCase creates a new CheckUseCase. defaultDays is the window used
// when a query does not name one; values <= 0 fall back to 7.
func NewCheckUseCase(accountRepo AccountRepository, txnRepo TransactionRepository, defaultDays int) *CheckUseCase {
	if defaultDays <= 0 {
		defaultDays = 7
	}

	return &CheckUseCase{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		defaultDays: defaultDays,
	}
}

// ListUpcomingChecksInput represents input for the upcoming-checks query.
type ListUpcomingChecksInput struct {
	AccountID  string
	WithinDays int
}

// ListUpcomingChecks returns received, not-yet-paid entries whose due date
// falls within the window.
func (uc *CheckUseCase) ListUpcomingChecks(ctx context.Context, input ListUpcomingChecksInput) ([]*domain.Transaction, error) {
	if input.WithinDays <= 0 {
		input.WithinDays = uc.defaultDays
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	dueBefore := time.Now().UTC().AddDate(0, 0, input.WithinDays)

	return uc.txnRepo.ListUpcomingChecks(ctx, input.AccountID, dueBefore)
}
