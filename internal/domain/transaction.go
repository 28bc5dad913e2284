// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus defines the status of a money transfer.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Transaction is the auditable record of one transfer between two accounts.
// Identities are assigned monotonically by the store and rows are append-only:
// once a transaction reaches SUCCESS or FAILED it is never modified again.
// PENDING is the only state in which balances may differ from what the record
// states; a row left PENDING beyond a transfer call indicates a store fault.
type Transaction struct {
	ID              int64             `db:"id" json:"id"` // BIGSERIAL in DB
	FromAccountID   uuid.UUID         `db:"from_account_id" json:"from_account_id"`
	ToAccountID     uuid.UUID         `db:"to_account_id" json:"to_account_id"`
	Amount          decimal.Decimal   `db:"amount" json:"amount"` // Strictly positive, NUMERIC(20, 4) in DB
	Status          TransactionStatus `db:"status" json:"status"`
	TransactionTime time.Time         `db:"transaction_time" json:"transaction_time"`
}

// NewTransaction creates a new PENDING Transaction between two accounts.
func NewTransaction(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) *Transaction {
	return &Transaction{
		FromAccountID:   fromAccountID,
		ToAccountID:     toAccountID,
		Amount:          amount,
		Status:          TransactionStatusPending,
		TransactionTime: time.Now().UTC(),
	}
}
