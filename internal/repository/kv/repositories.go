package kv

import (
	"github.com/dom/unique-nails/internal/repository"
	"github.com/dom/unique-nails/internal/store"
)

func NewRepositories(s store.Store) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(s),
		Design:  NewDesignRepository(s),
		Post:    NewPostRepository(s),
		Link:    NewLinkRepository(s),
		Bio:     NewBioRepository(s),
		Session: NewSessionRepository(s),
		Like:    NewLikeRepository(s),
		Admin:   NewAdminRepository(s),
	}
}
