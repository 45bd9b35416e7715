package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountNumberAlreadyExists indicates that the account number is already taken.
	ErrAccountNumberAlreadyExists = errors.New("account number already registered")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrAccountInactive indicates that the account is deactivated.
	ErrAccountInactive = errors.New("account is inactive")
)

// Account holds the ledger balance for one user.
//
// Balance is a decimal string and is mutated only through the
// conditional balance adjustment in accountrepo, never overwritten.
type Account struct {
	ID        int64     `json:"id"`
	Number    string    `json:"account_number"`
	OwnerID   int64     `json:"owner_id"`
	Balance   string    `json:"balance"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
