package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/dom/unique-nails/internal/config"
	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// MinAdminPasswordLength is the shortest admin password accepted at setup.
const MinAdminPasswordLength = 8

var (
	ErrAdminAlreadySetup = domain.Validation("Admin account already set up")
	ErrInvalidSetupKey   = domain.Unauthorized("Invalid setup key")
	ErrAdminNotSetup     = domain.Unauthorized("Admin account not set up")
)

type AdminService struct {
	adminRepo repository.AdminRepository
	sessions  *SessionManager
	cfg       *config.Config
}

func NewAdminService(adminRepo repository.AdminRepository, sessions *SessionManager, cfg *config.Config) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		sessions:  sessions,
		cfg:       cfg,
	}
}

type AdminSetupInput struct {
	Email    string
	Password string
	SetupKey string
}

func (s *AdminService) Sessions() *SessionManager {
	return s.sessions
}

func (s *AdminService) IsSetup(ctx context.Context) (bool, error) {
	return s.adminRepo.Exists(ctx)
}

// Setup creates the single admin account. It succeeds at most once.
func (s *AdminService) Setup(ctx context.Context, input AdminSetupInput) error {
	exists, err := s.adminRepo.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return ErrAdminAlreadySetup
	}

	if s.cfg.AdminSetupKey == "" ||
		subtle.ConstantTimeCompare([]byte(input.SetupKey), []byte(s.cfg.AdminSetupKey)) != 1 {
		return ErrInvalidSetupKey
	}

	email := normalizeEmail(input.Email)
	if email == "" || len(input.Password) < MinAdminPasswordLength {
		return domain.Validation("Invalid credentials. Email required and password must be at least 8 characters.")
	}

	hash, err := hashPassword(s.cfg, input.Password)
	if err != nil {
		return err
	}

	created, err := s.adminRepo.CreateIfAbsent(ctx, &domain.AdminCredentials{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	if !created {
		return ErrAdminAlreadySetup
	}
	return nil
}

func (s *AdminService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	creds, err := s.adminRepo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrAdminNotSetup
	}
	if err != nil {
		return nil, err
	}

	if normalizeEmail(email) != creds.Email {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, domain.Identity{Email: creds.Email})
}

func (s *AdminService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// Authenticate validates an admin session token.
func (s *AdminService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return session.Identity(), nil
}
