// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/haticeakyel/BankingApplication/internal/util"
)

// DefaultTimeout bounds request handling time at the router level.
const DefaultTimeout = 60 * time.Second

// respondWithJSON writes a JSON response body with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service error kinds to HTTP status codes.
// Client-input failures stay 4xx; store faults surface as 500.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidAmount),
		util.IsError(err, util.ErrSameAccount),
		util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = rootMessage(err)
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = util.ErrInvalidCredentials.Error()
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired
		message = util.ErrInsufficientFunds.Error()
	case util.IsError(err, util.ErrSourceNotFound),
		util.IsError(err, util.ErrDestinationNotFound),
		util.IsError(err, util.ErrNotAuthorizedOrNotFound),
		util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = rootMessage(err)
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "username already taken"
	case util.IsError(err, util.ErrAccountHasTransactions):
		statusCode = http.StatusConflict
		message = util.ErrAccountHasTransactions.Error()
	case util.IsError(err, util.ErrStoreFault):
		logger.Error("Transfer store fault", "error", err)
		message = "transfer could not be completed"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, map[string]string{"error": message})
}

// rootMessage returns the sentinel's own text for the known client-error kinds,
// keeping wrapping context out of responses.
func rootMessage(err error) string {
	for _, kind := range []error{
		util.ErrInvalidAmount,
		util.ErrSameAccount,
		util.ErrInvalidInput,
		util.ErrSourceNotFound,
		util.ErrDestinationNotFound,
		util.ErrNotAuthorizedOrNotFound,
		util.ErrNotFound,
	} {
		if util.IsError(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}
