// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-raka/kas-bank/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, number string, ownerID int64, balance string) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	GetByOwner(ctx context.Context, ownerID int64) (domain.Account, error)
	AddBalance(ctx context.Context, delta string, id int64) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates a zero balance account with the given number for the owner.
func (s *Service) Create(ctx context.Context, number string, ownerID int64) (domain.Account, error) {
	return s.repo.Create(ctx, number, ownerID, "0")
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, number)
}

// GetByOwner returns the account owned by the given user.
func (s *Service) GetByOwner(ctx context.Context, ownerID int64) (domain.Account, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// AddBalance atomically adjusts the account balance by the given delta.
func (s *Service) AddBalance(ctx context.Context, delta string, id int64) (domain.Account, error) {
	return s.repo.AddBalance(ctx, delta, id)
}
