package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/google/uuid"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

type PostInput struct {
	Title     string
	Link      string
	ImageURL  string
	CreatorID string
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(posts, func(a, b *domain.Post) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Create credits the post to an existing user, copying the user's current
// name.
func (s *PostService) Create(ctx context.Context, input PostInput) (*domain.Post, error) {
	if input.Title == "" || input.Link == "" || input.ImageURL == "" || input.CreatorID == "" {
		return nil, domain.Validation("Title, link, image URL, and creator ID are required")
	}

	creator, err := s.userRepo.GetByID(ctx, input.CreatorID)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Link:        input.Link,
		ImageURL:    input.ImageURL,
		CreatorID:   creator.ID,
		CreatorName: creator.Name,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id string, input PostInput) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		post.Title = strings.TrimSpace(input.Title)
	}
	if input.Link != "" {
		post.Link = input.Link
	}
	if input.ImageURL != "" {
		post.ImageURL = input.ImageURL
	}
	if input.CreatorID != "" && input.CreatorID != post.CreatorID {
		creator, err := s.userRepo.GetByID(ctx, input.CreatorID)
		if err != nil {
			return nil, err
		}
		post.CreatorID = creator.ID
		post.CreatorName = creator.Name
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

type LinkService struct {
	linkRepo repository.LinkRepository
}

func NewLinkService(linkRepo repository.LinkRepository) *LinkService {
	return &LinkService{linkRepo: linkRepo}
}

type LinkInput struct {
	Title    string
	URL      string
	Category string
}

func (s *LinkService) List(ctx context.Context) ([]*domain.Link, error) {
	links, err := s.linkRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(links, func(a, b *domain.Link) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return links, nil
}

func (s *LinkService) Get(ctx context.Context, id string) (*domain.Link, error) {
	return s.linkRepo.GetByID(ctx, id)
}

func (s *LinkService) Create(ctx context.Context, input LinkInput) (*domain.Link, error) {
	if input.Title == "" || input.URL == "" || input.Category == "" {
		return nil, domain.Validation("Title, URL, and category are required")
	}

	link := &domain.Link{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(input.Title),
		URL:       input.URL,
		Category:  strings.TrimSpace(input.Category),
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) Update(ctx context.Context, id string, input LinkInput) (*domain.Link, error) {
	link, err := s.linkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		link.Title = strings.TrimSpace(input.Title)
	}
	if input.URL != "" {
		link.URL = input.URL
	}
	if input.Category != "" {
		link.Category = strings.TrimSpace(input.Category)
	}

	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *LinkService) Delete(ctx context.Context, id string) error {
	if _, err := s.linkRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.linkRepo.Delete(ctx, id)
}
