package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/dom/unique-nails/internal/config"
	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = domain.Unauthorized("Invalid credentials")
	ErrEmailTaken         = domain.Conflict("User with this email already exists")
)

type AuthService struct {
	userRepo repository.UserRepository
	sessions *SessionManager
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessions *SessionManager, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		cfg:      cfg,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type SigninInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User    *domain.User
	Session *domain.Session
}

func (s *AuthService) Sessions() *SessionManager {
	return s.sessions
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" || email == "" || input.Password == "" {
		return nil, domain.Validation("Name, email, and password are required")
	}

	user, err := createUser(ctx, s.userRepo, s.cfg, input.Name, email, input.Password)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, domain.Identity{UserID: user.ID})
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Session: session}, nil
}

func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.Validation("Email and password are required")
	}

	userID, err := s.userRepo.GetIDByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	hash, err := s.userRepo.GetPasswordHash(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrCorruptRecord) {
		user, err = s.repairUser(ctx, userID, email)
	}
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, domain.Identity{UserID: user.ID})
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Session: session}, nil
}

// repairUser rebuilds an unreadable user record from the facts the caller
// just proved: the id behind the email index and the email itself.
func (s *AuthService) repairUser(ctx context.Context, userID, email string) (*domain.User, error) {
	log.Printf("ERROR [service.AuthService.Signin] user %s record unreadable, rebuilding", userID)

	user := domain.NewUser(userID, "User", email, time.Now().UnixMilli())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Signout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// Authenticate resolves a session token to the caller's identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return session.Identity(), nil
}

// Me returns the viewer's user record, or nil for anonymous callers and
// sessions whose user no longer exists.
func (s *AuthService) Me(ctx context.Context, viewer *domain.Identity) (*domain.User, error) {
	if viewer == nil {
		return nil, nil
	}
	user, err := s.userRepo.GetByID(ctx, viewer.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// createUser checks the email index, hashes the password and writes the
// user with its indexes.
func createUser(ctx context.Context, users repository.UserRepository, cfg *config.Config, name, email, password string) (*domain.User, error) {
	_, err := users.GetIDByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(cfg, password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(uuid.NewString(), strings.TrimSpace(name), email, time.Now().UnixMilli())
	if err := users.Create(ctx, user, hash); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func hashPassword(cfg *config.Config, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
