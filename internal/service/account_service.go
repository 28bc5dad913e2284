// internal/service/account_service.go
package service

import (
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

// AccountUpdate carries the mutable fields of an account.
type AccountUpdate struct {
	Name    string
	Number  string
	Balance decimal.Decimal
}

// AccountService handles account CRUD, always scoped to the owning user.
// Ownership violations are indistinguishable from missing accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, name, number string, balance decimal.Decimal) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]domain.Account, error)
	SearchAccounts(ctx context.Context, userID uuid.UUID, number, name string) ([]domain.Account, error)
	GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID uuid.UUID, update AccountUpdate) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error
}

type accountService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	userRepo        repository.UserRepository
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	logger          *slog.Logger
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) AccountService {
	return &accountService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		logger:          logger,
	}
}

// CreateAccount opens a new account for the user.
func (s *accountService) CreateAccount(ctx context.Context, userID uuid.UUID, name, number string, balance decimal.Decimal) (*domain.Account, error) {
	if name == "" || number == "" || balance.IsNegative() {
		return nil, util.ErrInvalidInput
	}

	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("create account: failed to get user %s: %w", userID, err)
	}

	account := domain.NewAccount(userID, name, number, balance)
	if err := s.accountRepo.CreateAccount(ctx, s.dbExecutor, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("Account created", "account_id", account.ID, "user_id", userID, "number", number)
	return account, nil
}

// ListAccounts returns all accounts owned by the user.
func (s *accountService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// SearchAccounts returns the user's accounts matching number and name fragments.
func (s *accountService) SearchAccounts(ctx context.Context, userID uuid.UUID, number, name string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.SearchAccounts(ctx, s.dbExecutor, userID, number, name)
	if err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	return accounts, nil
}

// GetAccount returns one account if it belongs to the user.
func (s *accountService) GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	return s.getOwnedAccount(ctx, s.dbExecutor, userID, accountID, false)
}

// UpdateAccount replaces the account's mutable fields.
func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID uuid.UUID, update AccountUpdate) (*domain.Account, error) {
	if update.Name == "" || update.Number == "" || update.Balance.IsNegative() {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update account: transaction controller does not implement DBExecutor")
	}

	account, err := s.getOwnedAccount(ctx, txExecutor, userID, accountID, true)
	if err != nil {
		return nil, err
	}

	account.Name = update.Name
	account.Number = update.Number
	account.Balance = update.Balance
	if err := s.accountRepo.UpdateAccount(ctx, txExecutor, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update account: failed to commit transaction: %w", err)
	}
	return account, nil
}

// DeleteAccount removes an account. Accounts referenced by any transaction
// cannot be deleted; the audit trail keeps them alive.
func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete account: transaction controller does not implement DBExecutor")
	}

	if _, err := s.getOwnedAccount(ctx, txExecutor, userID, accountID, true); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountTransactionsByAccountID(ctx, txExecutor, accountID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if count > 0 {
		return util.ErrAccountHasTransactions
	}

	if err := s.accountRepo.DeleteAccount(ctx, txExecutor, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete account: failed to commit transaction: %w", err)
	}

	s.logger.Info("Account deleted", "account_id", accountID, "user_id", userID)
	return nil
}

func (s *accountService) getOwnedAccount(ctx context.Context, q repository.DBExecutor, userID, accountID uuid.UUID, forUpdate bool) (*domain.Account, error) {
	get := s.accountRepo.GetAccountByID
	if forUpdate {
		get = s.accountRepo.GetAccountByIDForUpdate
	}
	account, err := get(ctx, q, accountID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotAuthorizedOrNotFound
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	if account.UserID != userID {
		return nil, util.ErrNotAuthorizedOrNotFound
	}
	return account, nil
}
