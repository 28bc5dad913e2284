// internal/repository/account_repo.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haticeakyel/BankingApplication/internal/domain"
)

// AccountRepository defines the interface for account data operations.
// Every method takes a DBExecutor so it can run inside or outside a
// database transaction.
type AccountRepository interface {
	// CreateAccount inserts a new account.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Account, error)
	// GetAccountByIDForUpdate retrieves an account and takes a row-level lock
	// (SELECT ... FOR UPDATE). Only meaningful inside a transaction.
	GetAccountByIDForUpdate(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Account, error)
	// ListAccountsByUserID retrieves all accounts owned by a user.
	ListAccountsByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) ([]domain.Account, error)
	// SearchAccounts retrieves a user's accounts whose number and name contain
	// the given fragments (case-insensitive).
	SearchAccounts(ctx context.Context, q DBExecutor, userID uuid.UUID, number, name string) ([]domain.Account, error)
	// UpdateAccount persists the account's mutable fields (name, number, balance).
	UpdateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// SetAccountBalance writes a new balance and bumps the modification timestamp.
	SetAccountBalance(ctx context.Context, q DBExecutor, id uuid.UUID, balance decimal.Decimal) error
	// DeleteAccount removes an account row.
	DeleteAccount(ctx context.Context, q DBExecutor, id uuid.UUID) error
}
