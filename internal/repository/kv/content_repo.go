package kv

import (
	"context"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/dom/unique-nails/internal/store"
)

const (
	msgPostNotFound = "Post not found"
	msgLinkNotFound = "Link not found"
)

type postRepository struct {
	s store.Store
}

func NewPostRepository(s store.Store) *postRepository {
	return &postRepository{s: s}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	comp := repository.NewCompensator("kv.PostRepository.Create")
	defer comp.RollbackUnlessCommitted(ctx)

	if err := putRecord(ctx, r.s, postKey(post.ID), post); err != nil {
		return err
	}
	comp.Add(func(ctx context.Context) error { return r.s.Del(ctx, postKey(post.ID)) })

	if err := r.s.RPush(ctx, postIDsKey, post.ID); err != nil {
		return domain.StoreError("rpush", postIDsKey, err)
	}

	comp.Commit()
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return getRecord(ctx, r.s, postKey(id), domain.ParsePost, msgPostNotFound)
}

func (r *postRepository) List(ctx context.Context) ([]*domain.Post, error) {
	keys, err := scanKeys(ctx, r.s, postPrefix)
	if err != nil {
		return nil, err
	}
	return loadAll(ctx, r.s, "kv.PostRepository.List", keys, domain.ParsePost)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	return putRecord(ctx, r.s, postKey(post.ID), post)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	if err := deleteKeys(ctx, r.s, postKey(id)); err != nil {
		return err
	}
	if err := r.s.LRem(ctx, postIDsKey, id); err != nil {
		return domain.StoreError("lrem", postIDsKey, err)
	}
	return nil
}

type linkRepository struct {
	s store.Store
}

func NewLinkRepository(s store.Store) *linkRepository {
	return &linkRepository{s: s}
}

func (r *linkRepository) Create(ctx context.Context, link *domain.Link) error {
	comp := repository.NewCompensator("kv.LinkRepository.Create")
	defer comp.RollbackUnlessCommitted(ctx)

	if err := putRecord(ctx, r.s, linkKey(link.ID), link); err != nil {
		return err
	}
	comp.Add(func(ctx context.Context) error { return r.s.Del(ctx, linkKey(link.ID)) })

	if err := r.s.SAdd(ctx, inspirationLinksKey, link.ID); err != nil {
		return domain.StoreError("sadd", inspirationLinksKey, err)
	}

	comp.Commit()
	return nil
}

func (r *linkRepository) GetByID(ctx context.Context, id string) (*domain.Link, error) {
	return getRecord(ctx, r.s, linkKey(id), domain.ParseLink, msgLinkNotFound)
}

// List resolves the members of the inspiration-links set. Links are never
// enumerated by prefix scan.
func (r *linkRepository) List(ctx context.Context) ([]*domain.Link, error) {
	ids, err := r.s.SMembers(ctx, inspirationLinksKey)
	if err != nil {
		return nil, domain.StoreError("smembers", inspirationLinksKey, err)
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = linkKey(id)
	}
	return loadAll(ctx, r.s, "kv.LinkRepository.List", keys, domain.ParseLink)
}

func (r *linkRepository) Update(ctx context.Context, link *domain.Link) error {
	return putRecord(ctx, r.s, linkKey(link.ID), link)
}

func (r *linkRepository) Delete(ctx context.Context, id string) error {
	if err := deleteKeys(ctx, r.s, linkKey(id)); err != nil {
		return err
	}
	if err := r.s.SRem(ctx, inspirationLinksKey, id); err != nil {
		return domain.StoreError("srem", inspirationLinksKey, err)
	}
	return nil
}

type bioRepository struct {
	s store.Store
}

func NewBioRepository(s store.Store) *bioRepository {
	return &bioRepository{s: s}
}

func (r *bioRepository) Get(ctx context.Context) (*domain.Bio, error) {
	return getRecord(ctx, r.s, bioKey, domain.ParseBio, "Bio not found")
}

func (r *bioRepository) Save(ctx context.Context, bio *domain.Bio) error {
	return putRecord(ctx, r.s, bioKey, bio)
}
