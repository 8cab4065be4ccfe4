package service_test

import (
	"context"
	"testing"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")

	first := e.createDesign(t, alice, "Nova", true)
	second := e.createDesign(t, alice, "Secret", false)
	kept := e.createDesign(t, bob, "Bloom", true)

	_, err := e.services.Design.ToggleLike(ctx, &domain.Identity{UserID: bob.ID}, first.ID)
	require.NoError(t, err)

	require.NoError(t, e.services.User.Delete(ctx, alice.ID))

	_, err = e.repos.User.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.repos.User.GetIDByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.repos.User.GetPasswordHash(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, id := range []string{first.ID, second.ID} {
		_, err := e.repos.Design.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "design %s should be gone", id)
	}

	liked, err := e.repos.Like.Exists(ctx, first.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	tracked, err := e.repos.Design.TrackedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID}, tracked)

	// The email is free again.
	e.signup(t, "Alice Again", "alice@example.com")
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.UserInput
		wantErr error
		check   func(*testing.T, *env, *domain.User)
	}{
		{
			name:  "rename keeps email",
			input: service.UserInput{Name: "Alicia"},
			check: func(t *testing.T, e *env, u *domain.User) {
				assert.Equal(t, "Alicia", u.Name)
				assert.Equal(t, "alice@example.com", u.Email)
			},
		},
		{
			name:  "email change moves the index",
			input: service.UserInput{Email: "alicia@example.com"},
			check: func(t *testing.T, e *env, u *domain.User) {
				id, err := e.repos.User.GetIDByEmail(ctx, "alicia@example.com")
				require.NoError(t, err)
				assert.Equal(t, u.ID, id)

				_, err = e.repos.User.GetIDByEmail(ctx, "alice@example.com")
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:    "email taken by another user",
			input:   service.UserInput{Email: "bob@example.com"},
			wantErr: domain.ErrConflict,
		},
		{
			name:  "password change",
			input: service.UserInput{Password: "new-password"},
			check: func(t *testing.T, e *env, u *domain.User) {
				_, err := e.services.Auth.Signin(ctx, service.SigninInput{Email: "alice@example.com", Password: "new-password"})
				assert.NoError(t, err)
				_, err = e.services.Auth.Signin(ctx, service.SigninInput{Email: "alice@example.com", Password: "password123"})
				assert.ErrorIs(t, err, service.ErrInvalidCredentials)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			alice := e.signup(t, "Alice", "alice@example.com")
			e.signup(t, "Bob", "bob@example.com")

			updated, err := e.services.User.Update(ctx, alice.ID, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, e, updated)
		})
	}
}

func TestUserService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.services.User.Create(ctx, service.UserInput{Name: "Alice"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	created, err := e.services.User.Create(ctx, service.UserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = e.services.User.Create(ctx, service.UserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	users, err := e.services.User.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, created.ID, users[0].ID)
}
