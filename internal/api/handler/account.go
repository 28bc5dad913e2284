// internal/api/handler/account.go
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

// AccountHandler handles HTTP requests for account CRUD.
type AccountHandler struct {
	service service.AccountService
	logger  *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service: svc,
		logger:  logger,
	}
}

// AccountRequest represents the request body for creating or updating an account.
type AccountRequest struct {
	Name    string          `json:"name"`
	Number  string          `json:"number"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateAccount handles the account creation request.
// POST /api/accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrNotAuthorizedOrNotFound)
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.service.CreateAccount(r.Context(), userID, req.Name, req.Number, req.Balance)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, account)
}

// ListAccounts handles listing all of the user's accounts.
// GET /api/accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrNotAuthorizedOrNotFound)
		return
	}

	accounts, err := h.service.ListAccounts(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, accounts)
}

// SearchAccounts handles searching the user's accounts by number/name fragments.
// POST /api/accounts/search?number=&name=
func (h *AccountHandler) SearchAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrNotAuthorizedOrNotFound)
		return
	}

	number := r.URL.Query().Get("number")
	name := r.URL.Query().Get("name")

	accounts, err := h.service.SearchAccounts(r.Context(), userID, number, name)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, accounts)
}

// GetAccount handles fetching one account.
// GET /api/accounts/{accountID}
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.authzIDs(w, r)
	if !ok {
		return
	}

	account, err := h.service.GetAccount(r.Context(), userID, accountID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, account)
}

// UpdateAccount handles updating an account's name, number and balance.
// PUT /api/accounts/{accountID}
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.authzIDs(w, r)
	if !ok {
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	account, err := h.service.UpdateAccount(r.Context(), userID, accountID, service.AccountUpdate{
		Name:    req.Name,
		Number:  req.Number,
		Balance: req.Balance,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, account)
}

// DeleteAccount handles deleting an account without transaction history.
// DELETE /api/accounts/{accountID}
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.authzIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(r.Context(), userID, accountID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authzIDs extracts the authenticated user ID and the accountID path parameter.
func (h *AccountHandler) authzIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrNotAuthorizedOrNotFound)
		return uuid.Nil, uuid.Nil, false
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, accountID, true
}
