// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haticeakyel/BankingApplication/internal/api/middleware"
	"github.com/haticeakyel/BankingApplication/internal/service"
	"github.com/haticeakyel/BankingApplication/internal/util"
)

// TransactionHandler handles HTTP requests for transfers and history.
type TransactionHandler struct {
	service service.TransferService
	logger  *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc service.TransferService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  logger,
	}
}

// TransferRequest represents the request body for a money transfer.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// Transfer handles the money transfer request.
// POST /api/transactions/transfer
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	fromAccountID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	toAccountID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Transfer(r.Context(), fromAccountID, toAccountID, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, result)
}

// GetTransactionHistory handles the transaction history request for one account.
// GET /api/transactions/account/{accountID}
func (h *TransactionHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrNotAuthorizedOrNotFound)
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	history, err := h.service.GetTransactionHistory(r.Context(), userID, accountID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, history)
}
