package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates that the amount is not a positive decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrSenderNotFound indicates that the sender account cannot be resolved.
	ErrSenderNotFound = errors.New("sender account not found")
	// ErrRecipientNotFound indicates that the recipient account cannot be resolved.
	ErrRecipientNotFound = errors.New("recipient account not found")
	// ErrSelfTransfer indicates a transfer to the sender's own account.
	ErrSelfTransfer = errors.New("cannot transfer to own account")
	// ErrInsufficientBalance indicates that the sender balance does not cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrCreditFailedAfterDebit indicates that the sender was debited but the
	// recipient credit could not be confirmed. The ledger is inconsistent until
	// reconciled out of band; this error must never be reported as an ordinary
	// business failure.
	ErrCreditFailedAfterDebit = errors.New("credit failed after debit")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Transaction statuses. StatusPending is declared for a future queued
// variant; the transfer engine only ever writes terminal statuses.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Transaction is the immutable record of one transfer attempt.
//
// Account numbers are denormalized strings so a failed attempt can still be
// recorded when one of the account lookups did not succeed.
type Transaction struct {
	ID          int64         `json:"id"`
	FromAccount string        `json:"from_account"`
	ToAccount   string        `json:"to_account"`
	Amount      string        `json:"amount"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	InitiatedBy *int64 `json:"initiated_by"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CreateTransactionParams is the input data for appending a transaction record.
type CreateTransactionParams struct {
	FromAccount string
	ToAccount   string
	Amount      string
	Description string
	Status      string
	InitiatedBy *int64
}

// TransferParams is the input data for the transfer operation.
type TransferParams struct {
	ToAccountNumber string
	Amount          string
	Description     string
}

// TransferTxResult is the result of a successful transfer.
type TransferTxResult struct {
	Transaction Transaction `json:"transaction"`
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
}
