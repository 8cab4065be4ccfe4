package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/dom/unique-nails/internal/repository/kv"
	"github.com/dom/unique-nails/internal/service"
	"github.com/dom/unique-nails/internal/store"
	"github.com/dom/unique-nails/internal/store/memory"
	"github.com/dom/unique-nails/internal/testutil"
	"github.com/stretchr/testify/require"
)

type env struct {
	store    store.Store
	repos    *repository.Repositories
	services *service.Services
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWithStore(t, memory.New())
}

func newEnvWithStore(t *testing.T, s store.Store) *env {
	t.Helper()

	repos := kv.NewRepositories(s)
	return &env{
		store:    s,
		repos:    repos,
		services: service.NewServices(repos, testutil.TestConfig()),
	}
}

func (e *env) signup(t *testing.T, name, email string) *domain.User {
	t.Helper()

	result, err := e.services.Auth.Signup(context.Background(), service.SignupInput{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return result.User
}

func (e *env) createDesign(t *testing.T, owner *domain.User, name string, public bool) *domain.Design {
	t.Helper()

	design, err := e.services.Design.Create(context.Background(), &domain.Identity{UserID: owner.ID}, service.DesignInput{
		Name:   name,
		Type:   domain.DesignTypeGalaxy,
		Public: &public,
	})
	require.NoError(t, err)
	return design
}

var errStoreDown = errors.New("store unavailable")

// flakyStore fails Set on failKey while set; everything else passes through.
type flakyStore struct {
	store.Store
	failKey string
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	if f.failKey != "" && key == f.failKey {
		return errStoreDown
	}
	return f.Store.Set(ctx, key, value)
}
