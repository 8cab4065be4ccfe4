package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/patrickmn/go-cache"
)

const bioCacheKey = "bio"

// BioService serves the about-page copy. Reads are cached in process and
// the cache is refreshed on every update made through this service.
type BioService struct {
	bioRepo repository.BioRepository
	cache   *cache.Cache
}

// NewBioService caches reads for ttl. A ttl of zero or less disables the
// cache; go-cache treats it as no expiry.
func NewBioService(bioRepo repository.BioRepository, ttl time.Duration) *BioService {
	s := &BioService{bioRepo: bioRepo}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

type BioInput struct {
	Title   string
	Tagline string
	Content string
}

// Get returns the stored bio, or the default copy if none was saved yet.
func (s *BioService) Get(ctx context.Context) (*domain.Bio, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(bioCacheKey); ok {
			bio := *cached.(*domain.Bio)
			return &bio, nil
		}
	}

	bio, err := s.bioRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultBio(time.Now().UnixMilli()), nil
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(bioCacheKey, bio, cache.DefaultExpiration)
	}
	out := *bio
	return &out, nil
}

func (s *BioService) Update(ctx context.Context, input BioInput) (*domain.Bio, error) {
	title := strings.TrimSpace(input.Title)
	tagline := strings.TrimSpace(input.Tagline)
	content := strings.TrimSpace(input.Content)
	if title == "" || tagline == "" || content == "" {
		return nil, domain.Validation("Title, tagline, and content are required")
	}

	bio := &domain.Bio{
		Title:     title,
		Tagline:   tagline,
		Content:   content,
		UpdatedAt: time.Now().UnixMilli(),
	}
	if err := s.bioRepo.Save(ctx, bio); err != nil {
		if s.cache != nil {
			s.cache.Delete(bioCacheKey)
		}
		return nil, err
	}

	if s.cache != nil {
		cached := *bio
		s.cache.Set(bioCacheKey, &cached, cache.DefaultExpiration)
	}
	return bio, nil
}
