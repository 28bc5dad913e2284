// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "github.com/haticeakyel/BankingApplication/internal/api"
	"github.com/haticeakyel/BankingApplication/internal/api/handler"
	"github.com/haticeakyel/BankingApplication/internal/auth"
	"github.com/haticeakyel/BankingApplication/internal/config"
	"github.com/haticeakyel/BankingApplication/internal/repository"
	"github.com/haticeakyel/BankingApplication/internal/repository/postgres"
	"github.com/haticeakyel/BankingApplication/internal/service"
	"github.com/haticeakyel/BankingApplication/internal/util"
	"github.com/haticeakyel/BankingApplication/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	AccountRepository     repository.AccountRepository
	TransactionRepository repository.TransactionRepository

	// Services
	UserService     service.UserService
	AccountService  service.AccountService
	TransferService service.TransferService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	tokens := auth.NewTokenManager(app.Config.JWTSecret, app.Config.TokenTTL)

	app.UserService = service.NewUserService(
		app.DB,
		app.DB,
		app.UserRepository,
		tokens,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.AccountService = service.NewAccountService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.AccountRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.TransferService = service.NewTransferService(
		app.DB,
		app.DB,
		app.AccountRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	accountHandler := handler.NewAccountHandler(app.AccountService, app.Logger)
	transactionHandler := handler.NewTransactionHandler(app.TransferService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, accountHandler, transactionHandler, tokens)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown releases application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
