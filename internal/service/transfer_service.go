// internal/service/transfer_service.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haticeakyel/BankingApplication/internal/domain"
	"github.com/haticeakyel/BankingApplication/internal/repository"
	"github.com/haticeakyel/BankingApplication/internal/util"
	"github.com/haticeakyel/BankingApplication/pkg/db"
)

// Direction labels for transaction history entries. An account can never be
// both source and destination of one transaction, so the label is unambiguous.
const (
	DirectionSent     = "SENT"
	DirectionReceived = "RECEIVED"
)

const historyTimeFormat = "2006-01-02 15:04:05"

// TransferResult describes a completed transfer.
type TransferResult struct {
	TransactionID     int64                    `json:"transaction_id"`
	Status            domain.TransactionStatus `json:"status"`
	Message           string                   `json:"message"`
	Amount            decimal.Decimal          `json:"amount"`
	FromAccountNumber string                   `json:"from_account_number"`
	ToAccountNumber   string                   `json:"to_account_number"`
}

// TransactionView is the read-only history projection for one transaction,
// seen from the perspective of a single account.
type TransactionView struct {
	ID                 int64                    `json:"id"`
	FromAccountNumber  string                   `json:"from_account_number"`
	ToAccountNumber    string                   `json:"to_account_number"`
	CounterpartyNumber string                   `json:"counterparty_account_number"`
	Amount             decimal.Decimal          `json:"amount"`
	TransactionDate    string                   `json:"transaction_date"`
	Status             domain.TransactionStatus `json:"status"`
	Direction          string                   `json:"type"`
}

// TransferService executes money transfers between accounts and derives
// per-account transaction history.
type TransferService interface {
	Transfer(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) (*TransferResult, error)
	GetTransactionHistory(ctx context.Context, userID, accountID uuid.UUID) ([]TransactionView, error)
}

type transferService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	logger          *slog.Logger
}

// NewTransferService creates a new instance of TransferService.
func NewTransferService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) TransferService {
	return &transferService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		logger:          logger,
	}
}

// Transfer moves amount from one account to another.
//
// Preconditions are checked in a fixed order, each with its own error kind;
// a precondition failure returns before any transaction record exists. Once
// preconditions pass, a PENDING record is persisted first (audit-first
// ordering) and the debit, credit and terminal SUCCESS write then share a
// single commit boundary, so a partially applied transfer is never observable.
func (s *transferService) Transfer(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) (*TransferResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidAmount
	}

	fromAccount, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, fromAccountID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrSourceNotFound
		}
		return nil, fmt.Errorf("transfer: failed to get source account %s: %w", fromAccountID, err)
	}

	toAccount, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, toAccountID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("transfer: failed to get destination account %s: %w", toAccountID, err)
	}

	if fromAccountID == toAccountID {
		return nil, util.ErrSameAccount
	}

	if fromAccount.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	// Audit-first: the PENDING record is committed before any balance mutation,
	// so a crash mid-transfer leaves a visible reconciliation signal.
	transaction := domain.NewTransaction(fromAccountID, toAccountID, amount)
	if err := s.transactionRepo.CreateTransaction(ctx, s.dbExecutor, transaction); err != nil {
		return nil, fmt.Errorf("transfer: failed to create pending transaction: %w", err)
	}

	if err := s.applyTransfer(ctx, transaction); err != nil {
		return nil, s.failTransaction(ctx, transaction, err)
	}

	s.logger.Info("Transfer completed",
		"transaction_id", transaction.ID,
		"from_account_id", fromAccountID,
		"to_account_id", toAccountID,
		"amount", amount.String())

	return &TransferResult{
		TransactionID:     transaction.ID,
		Status:            domain.TransactionStatusSuccess,
		Message:           "Transfer completed successfully",
		Amount:            amount,
		FromAccountNumber: fromAccount.Number,
		ToAccountNumber:   toAccount.Number,
	}, nil
}

// applyTransfer executes the balance mutation and the terminal SUCCESS write
// as one atomic unit against the store. Both account rows are locked in a
// fixed identity order so two opposite-direction transfers between the same
// pair of accounts cannot deadlock.
func (s *transferService) applyTransfer(ctx context.Context, transaction *domain.Transaction) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("transaction controller does not implement DBExecutor")
	}

	locked := make(map[uuid.UUID]*domain.Account, 2)
	for _, id := range lockOrder(transaction.FromAccountID, transaction.ToAccountID) {
		account, err := s.accountRepo.GetAccountByIDForUpdate(ctx, txExecutor, id)
		if err != nil {
			return fmt.Errorf("failed to lock account %s: %w", id, err)
		}
		locked[id] = account
	}
	source := locked[transaction.FromAccountID]
	destination := locked[transaction.ToAccountID]

	// Re-verify under lock; a concurrent transfer may have drained the source
	// since the precondition check.
	if source.Balance.LessThan(transaction.Amount) {
		return util.ErrInsufficientFunds
	}

	if err := s.accountRepo.SetAccountBalance(ctx, txExecutor, source.ID, source.Balance.Sub(transaction.Amount)); err != nil {
		return fmt.Errorf("failed to debit account %s: %w", source.ID, err)
	}
	if err := s.accountRepo.SetAccountBalance(ctx, txExecutor, destination.ID, destination.Balance.Add(transaction.Amount)); err != nil {
		return fmt.Errorf("failed to credit account %s: %w", destination.ID, err)
	}
	if err := s.transactionRepo.UpdateTransactionStatus(ctx, txExecutor, transaction.ID, domain.TransactionStatusSuccess); err != nil {
		return fmt.Errorf("failed to mark transaction %d successful: %w", transaction.ID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}

// failTransaction transitions the PENDING record to FAILED and shapes the
// error the caller sees. If even the FAILED mark cannot be persisted, the row
// stays PENDING and the fault is escalated for out-of-band reconciliation.
func (s *transferService) failTransaction(ctx context.Context, transaction *domain.Transaction, cause error) error {
	if markErr := s.transactionRepo.UpdateTransactionStatus(ctx, s.dbExecutor, transaction.ID, domain.TransactionStatusFailed); markErr != nil {
		s.logger.Error("Transaction left in PENDING, manual reconciliation required",
			"transaction_id", transaction.ID,
			"cause", cause,
			"mark_error", markErr)
		return fmt.Errorf("transfer: transaction %d could not be marked FAILED (%v) after: %v: %w",
			transaction.ID, markErr, cause, util.ErrStoreFault)
	}

	if util.IsError(cause, util.ErrInsufficientFunds) {
		s.logger.Warn("Transfer failed on balance re-check", "transaction_id", transaction.ID)
		return fmt.Errorf("transfer: transaction %d: %w", transaction.ID, util.ErrInsufficientFunds)
	}

	s.logger.Error("Transfer failed", "transaction_id", transaction.ID, "error", cause)
	return fmt.Errorf("transfer: transaction %d failed: %v: %w", transaction.ID, cause, util.ErrStoreFault)
}

// GetTransactionHistory returns the account's transactions, most recent first,
// labelled SENT or RECEIVED from the account's perspective. The account must
// belong to the requesting user; a missing account and a foreign account are
// deliberately indistinguishable.
func (s *transferService) GetTransactionHistory(ctx context.Context, userID, accountID uuid.UUID) ([]TransactionView, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotAuthorizedOrNotFound
		}
		return nil, fmt.Errorf("history: failed to get account %s: %w", accountID, err)
	}
	if account.UserID != userID {
		return nil, util.ErrNotAuthorizedOrNotFound
	}

	records, err := s.transactionRepo.ListTransactionsByAccountID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("history: failed to list transactions for account %s: %w", accountID, err)
	}

	views := make([]TransactionView, 0, len(records))
	for _, record := range records {
		view := TransactionView{
			ID:                record.ID,
			FromAccountNumber: record.FromAccountNumber,
			ToAccountNumber:   record.ToAccountNumber,
			Amount:            record.Amount,
			TransactionDate:   record.TransactionTime.Format(historyTimeFormat),
			Status:            record.Status,
		}
		if record.FromAccountID == accountID {
			view.Direction = DirectionSent
			view.CounterpartyNumber = record.ToAccountNumber
		} else {
			view.Direction = DirectionReceived
			view.CounterpartyNumber = record.FromAccountNumber
		}
		views = append(views, view)
	}
	return views, nil
}

// lockOrder returns the two account IDs in a fixed total order.
func lockOrder(a, b uuid.UUID) []uuid.UUID {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return []uuid.UUID{a, b}
	}
	return []uuid.UUID{b, a}
}
