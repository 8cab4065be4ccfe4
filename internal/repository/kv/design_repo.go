package kv

import (
	"context"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/store"
)

const msgDesignNotFound = "Design not found"

type designRepository struct {
	s store.Store
}

func NewDesignRepository(s store.Store) *designRepository {
	return &designRepository{s: s}
}

func (r *designRepository) Create(ctx context.Context, design *domain.Design) error {
	return putRecord(ctx, r.s, designKey(design.ID), design)
}

func (r *designRepository) GetByID(ctx context.Context, id string) (*domain.Design, error) {
	return getRecord(ctx, r.s, designKey(id), domain.ParseDesign, msgDesignNotFound)
}

// List loads every design tracked in design-ids. Ids whose record is gone
// are skipped; records never tracked are not listed.
func (r *designRepository) List(ctx context.Context) ([]*domain.Design, error) {
	ids, err := r.TrackedIDs(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, designKey(id))
	}
	return loadAll(ctx, r.s, "kv.DesignRepository.List", keys, domain.ParseDesign)
}

func (r *designRepository) Update(ctx context.Context, design *domain.Design) error {
	return putRecord(ctx, r.s, designKey(design.ID), design)
}

func (r *designRepository) Delete(ctx context.Context, id string) error {
	return deleteKeys(ctx, r.s, designKey(id))
}

func (r *designRepository) Track(ctx context.Context, id string) error {
	if err := r.s.RPush(ctx, designIDsKey, id); err != nil {
		return domain.StoreError("rpush", designIDsKey, err)
	}
	return nil
}

func (r *designRepository) Untrack(ctx context.Context, id string) error {
	if err := r.s.LRem(ctx, designIDsKey, id); err != nil {
		return domain.StoreError("lrem", designIDsKey, err)
	}
	return nil
}

func (r *designRepository) TrackedIDs(ctx context.Context) ([]string, error) {
	ids, err := r.s.LRange(ctx, designIDsKey)
	if err != nil {
		return nil, domain.StoreError("lrange", designIDsKey, err)
	}
	return ids, nil
}
