package userrepo

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/pkg/configpkg"
	"github.com/go-raka/kas-bank/pkg/dbpkg"
	"github.com/go-raka/kas-bank/pkg/passpkg"
	"github.com/go-raka/kas-bank/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

var config configpkg.Config

func TestMain(m *testing.M) {
	var err error

	config, err = configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	if _, err := dbpkg.Setup(config.DBDriver, config.DBSource); err != nil {
		log.Println("database is not reachable, skipping repository tests:", err)
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T, repo *RepoPGS) domain.User {
	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
		PhoneNumber:    randompkg.PhoneNumber(),
	}

	user, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, user)

	require.Equal(t, arg.FullName, user.FullName)
	require.Equal(t, arg.Email, user.Email)
	require.Equal(t, arg.HashedPassword, user.HashedPassword)
	require.Equal(t, arg.PhoneNumber, user.PhoneNumber)
	require.NotZero(t, user.ID)
	require.NotZero(t, user.CreatedAt)

	return user
}

func TestCreate(t *testing.T) {
	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
	repo := NewRepoPGS(tx)

	createRandomUser(t, repo)
}

func TestCreateDuplicateEmail(t *testing.T) {
	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
	repo := NewRepoPGS(tx)

	user := createRandomUser(t, repo)

	got, err := repo.Create(context.Background(), domain.CreateUserParams{
		FullName:       randompkg.Owner(),
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		PhoneNumber:    randompkg.PhoneNumber(),
	})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	require.Empty(t, got)
}

func TestGet(t *testing.T) {
	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
	repo := NewRepoPGS(tx)

	user := createRandomUser(t, repo)

	got, err := repo.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user, got)

	_, err = repo.Get(context.Background(), user.ID+10_000)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByEmail(t *testing.T) {
	tx := dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
	repo := NewRepoPGS(tx)

	user := createRandomUser(t, repo)

	got, err := repo.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.Equal(t, user, got)

	_, err = repo.GetByEmail(context.Background(), randompkg.Email())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
