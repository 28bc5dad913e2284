// internal/api/handler/transaction_test.go
package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haticeakyel/BankingApplication/internal/api/middleware"
	"github.com/haticeakyel/BankingApplication/internal/domain"
	"github.com/haticeakyel/BankingApplication/internal/service"
	"github.com/haticeakyel/BankingApplication/internal/util"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockTransferService is a mock implementation of service.TransferService.
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) (*service.TransferResult, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TransferResult), args.Error(1)
}

func (m *MockTransferService) GetTransactionHistory(ctx context.Context, userID, accountID uuid.UUID) ([]service.TransactionView, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TransactionView), args.Error(1)
}

func transferBody(from, to, amount string) io.Reader {
	return strings.NewReader(`{"from_account_id":"` + from + `","to_account_id":"` + to + `","amount":` + amount + `}`)
}

// TestTransferHandler tests the POST transfer endpoint.
func TestTransferHandler(t *testing.T) {
	fromID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	toID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("SuccessfulTransfer", func(t *testing.T) {
		mockService := new(MockTransferService)
		h := NewTransactionHandler(mockService, testLogger())

		result := &service.TransferResult{
			TransactionID:     42,
			Status:            domain.TransactionStatusSuccess,
			Message:           "Transfer completed successfully",
			Amount:            decimal.NewFromFloat(25.50),
			FromAccountNumber: "TR-0001",
			ToAccountNumber:   "TR-0002",
		}
		// The wire form "25.50" keeps its exponent through JSON decoding.
		mockService.On("Transfer", mock.Anything, fromID, toID, decimal.RequireFromString("25.50")).Return(result, nil).Once()

		r := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", transferBody(fromID.String(), toID.String(), "25.50"))
		w := httptest.NewRecorder()
		h.Transfer(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(42), body["transaction_id"])
		assert.Equal(t, "SUCCESS", body["status"])
		assert.Equal(t, "TR-0001", body["from_account_number"])
		assert.Equal(t, "TR-0002", body["to_account_number"])

		mockService.AssertExpectations(t)
	})

	t.Run("MalformedAccountID", func(t *testing.T) {
		mockService := new(MockTransferService)
		h := NewTransactionHandler(mockService, testLogger())

		r := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", transferBody("not-a-uuid", toID.String(), "25.50"))
		w := httptest.NewRecorder()
		h.Transfer(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ErrorStatusMapping", func(t *testing.T) {
		cases := []struct {
			name       string
			serviceErr error
			wantStatus int
		}{
			{"InvalidAmount", util.ErrInvalidAmount, http.StatusBadRequest},
			{"SameAccount", util.ErrSameAccount, http.StatusBadRequest},
			{"InsufficientFunds", util.ErrInsufficientFunds, http.StatusPaymentRequired},
			{"SourceNotFound", util.ErrSourceNotFound, http.StatusNotFound},
			{"DestinationNotFound", util.ErrDestinationNotFound, http.StatusNotFound},
			{"StoreFault", util.ErrStoreFault, http.StatusInternalServerError},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				mockService := new(MockTransferService)
				h := NewTransactionHandler(mockService, testLogger())
				mockService.On("Transfer", mock.Anything, fromID, toID, mock.Anything).Return(nil, c.serviceErr).Once()

				r := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", transferBody(fromID.String(), toID.String(), "25.50"))
				w := httptest.NewRecorder()
				h.Transfer(w, r)

				assert.Equal(t, c.wantStatus, w.Code)
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])

				mockService.AssertExpectations(t)
			})
		}
	})

	t.Run("StoreFaultHidesDetail", func(t *testing.T) {
		mockService := new(MockTransferService)
		h := NewTransactionHandler(mockService, testLogger())
		mockService.On("Transfer", mock.Anything, fromID, toID, mock.Anything).Return(nil, util.ErrStoreFault).Once()

		r := httptest.NewRequest(http.MethodPost, "/api/transactions/transfer", transferBody(fromID.String(), toID.String(), "25.50"))
		w := httptest.NewRecorder()
		h.Transfer(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "transfer could not be completed", body["error"])
	})
}

// TestGetTransactionHistoryHandler tests the history endpoint.
func TestGetTransactionHistoryHandler(t *testing.T) {
	userID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	accountID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	historyRequest := func(accountIDParam string, authenticated bool) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/api/transactions/account/"+accountIDParam, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("accountID", accountIDParam)
		ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
		if authenticated {
			ctx = middleware.WithUserID(ctx, userID)
		}
		return r.WithContext(ctx)
	}

	t.Run("SuccessfulHistory", func(t *testing.T) {
		mockService := new(MockTransferService)
		h := NewTransactionHandler(mockService, testLogger())

		views := []service.TransactionView{
			{
				ID:                 2,
				FromAccountNumber:  "TR-0001",
				ToAccountNumber:    "TR-0002",
				CounterpartyNumber: "TR-0002",
				Amount:             decimal.NewFromFloat(25.00),
				TransactionDate:    "2026-08-30 14:05:09",
				Status:             domain.TransactionStatusSuccess,
				Direction:          service.DirectionSent,
			},
		}
		mockService.On("GetTransactionHistory", mock.Anything, userID, accountID).Return(views, nil).Once()

		w := httptest.NewRecorder()
		h.GetTransactionHistory(w, historyRequest(accountID.String(), true))

		assert.Equal(t, http.StatusOK, w.Code)
		var body []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "SENT", body[0]["type"])
		assert.Equal(t, "TR-0002", body[0]["counterparty_account_number"])
		assert.Equal(t, "2026-08-30 14:05:09", body[0]["transaction_date"])

		mockService.AssertExpectations(t)
	})

	t.Run("ForeignOrMissingAccount", func(t *testing.T) {
		mockService := new(MockTransferService)
		h := NewTransactionHandler(mockService, testLogger())
		mockService.On("GetTransactionHistory", mock.Anything, userID, accountID).Return(nil, util.ErrNotAuthorizedOrNotFound).Once()

		w := httptest.NewRecorder()
		h.GetTransactionHistory(w, historyRequest(accountID.String(), true))

		assert.Equal(t, http.StatusNotFound, w.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("MissingAuthContext", func(t *testing.T) {
		mockService := new(MockTransferService)
		h := NewTransactionHandler(mockService, testLogger())

		w := httptest.NewRecorder()
		h.GetTransactionHistory(w, historyRequest(accountID.String(), false))

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockService.AssertNotCalled(t, "GetTransactionHistory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedAccountID", func(t *testing.T) {
		mockService := new(MockTransferService)
		h := NewTransactionHandler(mockService, testLogger())

		w := httptest.NewRecorder()
		h.GetTransactionHistory(w, historyRequest("not-a-uuid", true))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetTransactionHistory", mock.Anything, mock.Anything, mock.Anything)
	})
}
