// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"errors"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/errorspkg"
	"github.com/go-raka/kas-bank/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// AccountService provides the account layer interface needed at registration.
type AccountService interface {
	Create(ctx context.Context, number string, ownerID int64) (domain.Account, error)
	GetByOwner(ctx context.Context, ownerID int64) (domain.Account, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns user service struct to manage user business logic.
func New(ur Repo, as AccountService) *Service {
	return &Service{
		repo:           ur,
		accountService: as,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}

// Create registers a user together with their zero balance account under the
// requested account number.
func (s *Service) Create(ctx context.Context, fullName, email, password, phoneNumber, accountNumber string) (domain.UserWithoutPassword, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, domain.Account{}, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		FullName:       fullName,
		Email:          email,
		HashedPassword: hashedPassword,
		PhoneNumber:    phoneNumber,
	}

	gotUser, err := s.repo.Create(ctx, arg)
	if err != nil {
		return result, domain.Account{}, err
	}

	account, err := s.accountService.Create(ctx, accountNumber, gotUser.ID)
	if err != nil {
		return result, account, err
	}

	result = NewUserWithoutPassword(gotUser)

	return result, account, nil
}

// CheckPassword checks if the password is valid for the given email.
func (s *Service) CheckPassword(ctx context.Context, email, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWithoutPassword

	gotUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return response, err
	}

	if err = passpkg.Check(password, gotUser.HashedPassword); err != nil {
		l.Info().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	response = NewUserWithoutPassword(gotUser)

	return response, nil
}

// Profile returns the user's profile together with their account.
func (s *Service) Profile(ctx context.Context, id int64) (domain.UserWithoutPassword, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWithoutPassword

	gotUser, err := s.repo.Get(ctx, id)
	if err != nil {
		return result, domain.Account{}, err
	}

	account, err := s.accountService.GetByOwner(ctx, gotUser.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			l.Error().Err(err).Send()
		}

		return result, account, err
	}

	result = NewUserWithoutPassword(gotUser)

	return result, account, nil
}

// GetByEmail returns the user with the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (domain.UserWithoutPassword, error) {
	gotUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return NewUserWithoutPassword(gotUser), nil
}
