package kv

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/dom/unique-nails/internal/store"
)

const (
	msgUserNotFound = "User not found"
	msgEmailInUse   = "User with this email already exists"
)

type userRepository struct {
	s store.Store
}

func NewUserRepository(s store.Store) *userRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User, passwordHash string) error {
	comp := repository.NewCompensator("kv.UserRepository.Create")
	defer comp.RollbackUnlessCommitted(ctx)

	if err := putRecord(ctx, r.s, userKey(user.ID), user); err != nil {
		return err
	}
	comp.Add(func(ctx context.Context) error { return r.s.Del(ctx, userKey(user.ID)) })

	claimed, err := r.s.SetNX(ctx, userEmailKey(user.Email), user.ID)
	if err != nil {
		return domain.StoreError("setnx", userEmailKey(user.Email), err)
	}
	if !claimed {
		return domain.Conflict(msgEmailInUse)
	}
	comp.Add(func(ctx context.Context) error { return r.s.Del(ctx, userEmailKey(user.Email)) })

	if err := r.s.Set(ctx, userAuthKey(user.ID), passwordHash); err != nil {
		return domain.StoreError("set", userAuthKey(user.ID), err)
	}

	comp.Commit()
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return getRecord(ctx, r.s, userKey(id), domain.ParseUser, msgUserNotFound)
}

func (r *userRepository) GetIDByEmail(ctx context.Context, email string) (string, error) {
	id, err := r.s.Get(ctx, userEmailKey(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.NotFound(msgUserNotFound)
	}
	if err != nil {
		return "", domain.StoreError("get", userEmailKey(email), err)
	}
	return id, nil
}

// List scans the user: prefix, which also covers the email index and the
// credential namespaces; those keys are dropped before fetching.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	keys, err := scanKeys(ctx, r.s, userPrefix)
	if err != nil {
		return nil, err
	}

	records := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, userEmailPrefix) || strings.HasPrefix(k, userAuthPrefix) {
			continue
		}
		records = append(records, k)
	}

	return loadAll(ctx, r.s, "kv.UserRepository.List", records, domain.ParseUser)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User, oldEmail string) error {
	if user.Email == oldEmail {
		return r.Save(ctx, user)
	}

	comp := repository.NewCompensator("kv.UserRepository.Update")
	defer comp.RollbackUnlessCommitted(ctx)

	newKey := userEmailKey(user.Email)
	claimed, err := r.s.SetNX(ctx, newKey, user.ID)
	if err != nil {
		return domain.StoreError("setnx", newKey, err)
	}
	if !claimed {
		owner, err := r.GetIDByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if owner != user.ID {
			return domain.Conflict(msgEmailInUse)
		}
	} else {
		comp.Add(func(ctx context.Context) error { return r.s.Del(ctx, newKey) })
	}

	if err := r.Save(ctx, user); err != nil {
		return err
	}

	if oldEmail != "" {
		if err := r.deleteEmailIndex(ctx, oldEmail, user.ID); err != nil {
			return err
		}
	}

	comp.Commit()
	return nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	return putRecord(ctx, r.s, userKey(user.ID), user)
}

func (r *userRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	hash, err := r.s.Get(ctx, userAuthKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return "", domain.NotFound(msgUserNotFound)
	}
	if err != nil {
		return "", domain.StoreError("get", userAuthKey(id), err)
	}
	return hash, nil
}

func (r *userRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	if err := r.s.Set(ctx, userAuthKey(id), hash); err != nil {
		return domain.StoreError("set", userAuthKey(id), err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, user *domain.User) error {
	if err := deleteKeys(ctx, r.s, userKey(user.ID)); err != nil {
		return err
	}
	if err := r.deleteEmailIndex(ctx, user.Email, user.ID); err != nil {
		return err
	}
	return deleteKeys(ctx, r.s, userAuthKey(user.ID))
}

// deleteEmailIndex removes the index entry only while it still points at
// userID, so a stale email never drops another user's mapping.
func (r *userRepository) deleteEmailIndex(ctx context.Context, email, userID string) error {
	owner, err := r.GetIDByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner != userID {
		return nil
	}
	return deleteKeys(ctx, r.s, userEmailKey(email))
}
