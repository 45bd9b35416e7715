// Package transactionrepo manages the append-only log of transfer attempts.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/dbpkg"
	"github.com/go-raka/kas-bank/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (from_account, to_account, amount, description, status, initiated_by)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, from_account, to_account, amount, description, status, initiated_by, created_at
`

// Create appends the transaction record and then returns it.
// Records are never updated or deleted afterwards.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FromAccount,
		arg.ToAccount,
		arg.Amount,
		arg.Description,
		arg.Status,
		arg.InitiatedBy,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.FromAccount,
		&t.ToAccount,
		&t.Amount,
		&t.Description,
		&t.Status,
		&t.InitiatedBy,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)
		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, from_account, to_account, amount, description, status, initiated_by, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.FromAccount,
		&t.ToAccount,
		&t.Amount,
		&t.Description,
		&t.Status,
		&t.InitiatedBy,
		&t.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listForAccountQuery = `
SELECT
	id, from_account, to_account, amount, description, status, initiated_by, created_at
FROM transactions
WHERE
    from_account = $1 OR to_account = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

// ListForAccount returns transactions where the given account number appears
// as sender or recipient, newest first.
func (r *RepoPGS) ListForAccount(ctx context.Context, accountNumber string, limit int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForAccountQuery, accountNumber, limit)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.FromAccount,
			&t.ToAccount,
			&t.Amount,
			&t.Description,
			&t.Status,
			&t.InitiatedBy,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
