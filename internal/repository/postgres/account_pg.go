// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/haticeakyel/BankingApplication/internal/domain"
	"github.com/haticeakyel/BankingApplication/internal/repository"
	"github.com/haticeakyel/BankingApplication/internal/util"
)

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account into the database using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (id, user_id, number, name, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query, account.ID, account.UserID, account.Number, account.Name,
		account.Balance, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByID retrieves an account by its ID using the provided DBExecutor.
func (r *AccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Account, error) {
	return r.getAccount(ctx, q,
		`SELECT id, user_id, number, name, balance, created_at, updated_at FROM accounts WHERE id = $1`, id)
}

// GetAccountByIDForUpdate retrieves an account and locks its row for the
// duration of the surrounding transaction.
func (r *AccountRepository) GetAccountByIDForUpdate(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Account, error) {
	return r.getAccount(ctx, q,
		`SELECT id, user_id, number, name, balance, created_at, updated_at FROM accounts WHERE id = $1 FOR UPDATE`, id)
}

func (r *AccountRepository) getAccount(ctx context.Context, q repository.DBExecutor, query string, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID %s: %w", id, err)
	}
	return &account, nil
}

// ListAccountsByUserID retrieves all accounts owned by the given user.
func (r *AccountRepository) ListAccountsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) ([]domain.Account, error) {
	accounts := []domain.Account{}
	query := `SELECT id, user_id, number, name, balance, created_at, updated_at
              FROM accounts WHERE user_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	return accounts, nil
}

// SearchAccounts retrieves the user's accounts whose number and name contain
// the given fragments, case-insensitively. Empty fragments match everything.
func (r *AccountRepository) SearchAccounts(ctx context.Context, q repository.DBExecutor, userID uuid.UUID, number, name string) ([]domain.Account, error) {
	accounts := []domain.Account{}
	query := `SELECT id, user_id, number, name, balance, created_at, updated_at
              FROM accounts
              WHERE user_id = $1 AND number ILIKE '%' || $2 || '%' AND name ILIKE '%' || $3 || '%'
              ORDER BY created_at`
	if err := q.SelectContext(ctx, &accounts, query, userID, number, name); err != nil {
		return nil, fmt.Errorf("failed to search accounts for user %s: %w", userID, err)
	}
	return accounts, nil
}

// UpdateAccount persists the account's mutable fields.
func (r *AccountRepository) UpdateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `UPDATE accounts SET number = $1, name = $2, balance = $3, updated_at = $4 WHERE id = $5`
	result, err := q.ExecContext(ctx, query, account.Number, account.Name, account.Balance, time.Now().UTC(), account.ID)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.ID, err)
	}
	return requireRowAffected(result, account.ID)
}

// SetAccountBalance writes a new balance and bumps the modification timestamp.
func (r *AccountRepository) SetAccountBalance(ctx context.Context, q repository.DBExecutor, id uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE accounts SET balance = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, balance, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set balance for account %s: %w", id, err)
	}
	return requireRowAffected(result, id)
}

// DeleteAccount removes an account row.
func (r *AccountRepository) DeleteAccount(ctx context.Context, q repository.DBExecutor, id uuid.UUID) error {
	result, err := q.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return requireRowAffected(result, id)
}

func requireRowAffected(result sql.Result, id uuid.UUID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for account %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
