package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaveh/bankbook/internal/adapter/http/dto"
	"github.com/kaveh/bankbook/internal/domain"
	"github.com/kaveh/bankbook/internal/usecase"
)

// CheckService defines the behavior needed by CheckHandler.
type CheckService interface {
	ListUpcomingChecks(ctx context.Context, input usecase.ListUpcomingChecksInput) ([]*domain.Transaction, error)
}

// CheckHandler answers upcoming-check queries.
type CheckHandler struct {
	checkUC CheckService
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(checkUC CheckService) *CheckHandler {
	return &CheckHandler{checkUC: checkUC}
}

// ListUpcoming returns received checks due within the requested window.
func (h *CheckHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	checks, err := h.checkUC.ListUpcomingChecks(r.Context(), usecase.ListUpcomingChecksInput{
		AccountID:  accountID,
		WithinDays: parseIntQuery(r, "within_days", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list upcoming checks", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(checks),
		Total:        int64(len(checks)),
	})
}
