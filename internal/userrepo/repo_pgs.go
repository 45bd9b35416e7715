// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/dbpkg"
	"github.com/go-raka/kas-bank/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    users (full_name, email, hashed_password, phone_number)
VALUES
    ($1, $2, $3, $4)
RETURNING id, full_name, email, hashed_password, phone_number, created_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FullName,
		arg.Email,
		arg.HashedPassword,
		arg.PhoneNumber,
	)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.HashedPassword,
		&u.PhoneNumber,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "users_email_key" {
				return u, domain.ErrEmailAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getByEmailQuery = `
SELECT
	id, full_name, email, hashed_password, phone_number, created_at
FROM users
WHERE email = $1
`

// GetByEmail returns the user with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, getByEmailQuery, email)
	return r.scan(ctx, row)
}

const getQuery = `
SELECT
	id, full_name, email, hashed_password, phone_number, created_at
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, getQuery, id)
	return r.scan(ctx, row)
}

func (r *RepoPGS) scan(ctx context.Context, row *sql.Row) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.HashedPassword,
		&u.PhoneNumber,
		&u.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}
