package kv

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/store"
)

type sessionRepository struct {
	s store.Store
}

func NewSessionRepository(s store.Store) *sessionRepository {
	return &sessionRepository{s: s}
}

func (r *sessionRepository) Create(ctx context.Context, prefix string, session *domain.Session) error {
	return putRecord(ctx, r.s, prefix+session.Token, session)
}

func (r *sessionRepository) Get(ctx context.Context, prefix, token string) (*domain.Session, error) {
	session, err := getRecord(ctx, r.s, prefix+token, domain.ParseSession, "Session not found")
	if err != nil {
		return nil, err
	}
	session.Token = token
	return session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, prefix, token string) error {
	return deleteKeys(ctx, r.s, prefix+token)
}

type likeRepository struct {
	s store.Store
}

func NewLikeRepository(s store.Store) *likeRepository {
	return &likeRepository{s: s}
}

func (r *likeRepository) Exists(ctx context.Context, designID, userID string) (bool, error) {
	key := likeKey(designID, userID)
	ok, err := r.s.Exists(ctx, key)
	if err != nil {
		return false, domain.StoreError("exists", key, err)
	}
	return ok, nil
}

func (r *likeRepository) Put(ctx context.Context, designID, userID string, at int64) error {
	key := likeKey(designID, userID)
	if err := r.s.Set(ctx, key, strconv.FormatInt(at, 10)); err != nil {
		return domain.StoreError("set", key, err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, designID, userID string) error {
	return deleteKeys(ctx, r.s, likeKey(designID, userID))
}

func (r *likeRepository) DeleteAllForDesign(ctx context.Context, designID string) error {
	keys, err := scanKeys(ctx, r.s, likeKey(designID, ""))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return deleteKeys(ctx, r.s, keys...)
}

type adminRepository struct {
	s store.Store
}

func NewAdminRepository(s store.Store) *adminRepository {
	return &adminRepository{s: s}
}

func (r *adminRepository) Exists(ctx context.Context) (bool, error) {
	ok, err := r.s.Exists(ctx, adminCredentialsKey)
	if err != nil {
		return false, domain.StoreError("exists", adminCredentialsKey, err)
	}
	return ok, nil
}

func (r *adminRepository) Get(ctx context.Context) (*domain.AdminCredentials, error) {
	return getRecord(ctx, r.s, adminCredentialsKey, domain.ParseAdminCredentials, "Admin account not set up")
}

func (r *adminRepository) CreateIfAbsent(ctx context.Context, creds *domain.AdminCredentials) (bool, error) {
	data, err := json.Marshal(creds)
	if err != nil {
		return false, err
	}
	ok, err := r.s.SetNX(ctx, adminCredentialsKey, string(data))
	if err != nil {
		return false, domain.StoreError("setnx", adminCredentialsKey, err)
	}
	return ok, nil
}
