// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/dbpkg"
	"github.com/go-raka/kas-bank/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, account_number, owner, balance, is_active, created_at
`

// AddBalance adjusts the account's balance by the given delta and returns
// the changed account.
//
// The adjustment is a single atomic statement: the accounts_balance_check
// constraint rejects the update at write time if the resulting balance would
// go negative, so a debit returns ErrInsufficientBalance exactly when the
// stored balance no longer covers it, regardless of what the caller read
// earlier.
func (r *RepoPGS) AddBalance(ctx context.Context, delta string, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, delta, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.OwnerID,
		&a.Balance,
		&a.IsActive,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const createQuery = `
INSERT INTO
    accounts (account_number, owner, balance)
VALUES
    ($1, $2, $3)
RETURNING id, account_number, owner, balance, is_active, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, number string, ownerID int64, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, number, ownerID, balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.OwnerID,
		&a.Balance,
		&a.IsActive,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_owner_fkey":
				return a, domain.ErrOwnerNotFound
			case "accounts_account_number_key":
				return a, domain.ErrAccountNumberAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, account_number, owner, balance, is_active, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, getQuery, id)
	return r.scan(ctx, row)
}

const getByNumberQuery = `
SELECT
	id, account_number, owner, balance, is_active, created_at
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, getByNumberQuery, number)
	return r.scan(ctx, row)
}

const getByOwnerQuery = `
SELECT
	id, account_number, owner, balance, is_active, created_at
FROM accounts
WHERE owner = $1
`

// GetByOwner returns the account owned by the given user.
func (r *RepoPGS) GetByOwner(ctx context.Context, ownerID int64) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, getByOwnerQuery, ownerID)
	return r.scan(ctx, row)
}

func (r *RepoPGS) scan(ctx context.Context, row *sql.Row) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.OwnerID,
		&a.Balance,
		&a.IsActive,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
