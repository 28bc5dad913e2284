// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/haticeakyel/BankingApplication/internal/domain"
)

// TransactionRecord is a transaction row joined with both account numbers,
// as needed by the history projection.
type TransactionRecord struct {
	domain.Transaction
	FromAccountNumber string `db:"from_account_number"`
	ToAccountNumber   string `db:"to_account_number"`
}

// TransactionRepository defines the interface for transaction data operations.
// Transactions are append-only: rows are created PENDING and only their
// status may change afterwards, exactly once, to a terminal state.
type TransactionRepository interface {
	// CreateTransaction inserts a new transaction record and assigns its identity.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// UpdateTransactionStatus transitions a transaction to the given status.
	UpdateTransactionStatus(ctx context.Context, q DBExecutor, id int64, status domain.TransactionStatus) error
	// ListTransactionsByAccountID retrieves every transaction in which the
	// account is source or destination, most recent first (ties broken by
	// identity descending).
	ListTransactionsByAccountID(ctx context.Context, q DBExecutor, accountID uuid.UUID) ([]TransactionRecord, error)
	// CountTransactionsByAccountID reports how many transactions reference the account.
	CountTransactionsByAccountID(ctx context.Context, q DBExecutor, accountID uuid.UUID) (int64, error)
}
