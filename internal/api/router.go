// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/haticeakyel/BankingApplication/internal/api/handler"
	"github.com/haticeakyel/BankingApplication/internal/api/middleware"
	"github.com/haticeakyel/BankingApplication/internal/auth"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	userHandler *handler.UserHandler,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	tokens *auth.TokenManager,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users/register", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// Endpoints requiring a valid session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", accountHandler.CreateAccount)
				r.Get("/", accountHandler.ListAccounts)
				r.Post("/search", accountHandler.SearchAccounts)
				r.Get("/{accountID}", accountHandler.GetAccount)
				r.Put("/{accountID}", accountHandler.UpdateAccount)
				r.Delete("/{accountID}", accountHandler.DeleteAccount)
			})

			r.Post("/transactions/transfer", transactionHandler.Transfer)
			r.Get("/transactions/account/{accountID}", transactionHandler.GetTransactionHistory)
		})
	})

	return r
}
