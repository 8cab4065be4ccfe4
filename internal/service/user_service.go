package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dom/unique-nails/internal/config"
	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
)

// UserService backs the admin user management endpoints.
type UserService struct {
	userRepo repository.UserRepository
	designs  *DesignService
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, designs *DesignService, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		designs:  designs,
		cfg:      cfg,
	}
}

type UserInput struct {
	Name     string
	Email    string
	Password string
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortUsersNewestFirst(users)
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, input UserInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" || email == "" || input.Password == "" {
		return nil, domain.Validation("Name, email, and password are required")
	}
	return createUser(ctx, s.userRepo, s.cfg, input.Name, email, input.Password)
}

// Update applies the non-empty fields of input. A new email moves the
// email index; a new password replaces the stored hash.
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldEmail := user.Email
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(input.Email); email != "" {
		user.Email = email
	}

	if err := s.userRepo.Update(ctx, user, oldEmail); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if input.Password != "" {
		hash, err := hashPassword(s.cfg, input.Password)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.SetPasswordHash(ctx, user.ID, hash); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Delete removes the user with its email index and credential, then every
// design the user owned.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return err
	}
	return s.designs.purgeOwnedBy(ctx, user)
}

func sortUsersNewestFirst(users []*domain.User) {
	slices.SortFunc(users, func(a, b *domain.User) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
