// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/haticeakyel/BankingApplication/internal/domain"
	"github.com/haticeakyel/BankingApplication/internal/repository"
	"github.com/haticeakyel/BankingApplication/internal/util"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record and assigns its identity
// from the BIGSERIAL sequence.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (from_account_id, to_account_id, amount, status, transaction_time)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.FromAccountID,
		transaction.ToAccountID,
		transaction.Amount,
		transaction.Status,
		transaction.TransactionTime,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateTransactionStatus transitions a transaction to the given status.
func (r *TransactionRepository) UpdateTransactionStatus(ctx context.Context, q repository.DBExecutor, id int64, status domain.TransactionStatus) error {
	result, err := q.ExecContext(ctx, `UPDATE transactions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for transaction %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ListTransactionsByAccountID retrieves every transaction in which the account
// participates, joined with both account numbers, most recent first. Ties on
// the timestamp are broken by identity descending so the order is deterministic.
func (r *TransactionRepository) ListTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID uuid.UUID) ([]repository.TransactionRecord, error) {
	records := []repository.TransactionRecord{}
	query := `
		SELECT t.id, t.from_account_id, t.to_account_id, t.amount, t.status, t.transaction_time,
		       fa.number AS from_account_number, ta.number AS to_account_number
		FROM transactions t
		JOIN accounts fa ON fa.id = t.from_account_id
		JOIN accounts ta ON ta.id = t.to_account_id
		WHERE t.from_account_id = $1 OR t.to_account_id = $1
		ORDER BY t.transaction_time DESC, t.id DESC`
	if err := q.SelectContext(ctx, &records, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %s: %w", accountID, err)
	}
	return records, nil
}

// CountTransactionsByAccountID reports how many transactions reference the account.
func (r *TransactionRepository) CountTransactionsByAccountID(ctx context.Context, q repository.DBExecutor, accountID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM transactions WHERE from_account_id = $1 OR to_account_id = $1`
	if err := q.GetContext(ctx, &count, query, accountID); err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}
	return count, nil
}
