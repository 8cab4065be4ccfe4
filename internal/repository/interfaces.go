package repository

import (
	"context"

	"github.com/dom/unique-nails/internal/domain"
)

type UserRepository interface {
	// Create writes the user record, its email index and its credential,
	// in that order.
	Create(ctx context.Context, user *domain.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetIDByEmail(ctx context.Context, email string) (string, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update writes the record and moves the email index when the email
	// differs from oldEmail.
	Update(ctx context.Context, user *domain.User, oldEmail string) error
	// Save writes the record only.
	Save(ctx context.Context, user *domain.User) error
	GetPasswordHash(ctx context.Context, id string) (string, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
	// Delete removes the record, the email index and the credential.
	Delete(ctx context.Context, user *domain.User) error
}

type DesignRepository interface {
	Create(ctx context.Context, design *domain.Design) error
	GetByID(ctx context.Context, id string) (*domain.Design, error)
	List(ctx context.Context) ([]*domain.Design, error)
	Update(ctx context.Context, design *domain.Design) error
	Delete(ctx context.Context, id string) error
	// Track and Untrack maintain the global design-ids list.
	Track(ctx context.Context, id string) error
	Untrack(ctx context.Context, id string) error
	TrackedIDs(ctx context.Context) ([]string, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}

type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetByID(ctx context.Context, id string) (*domain.Link, error)
	List(ctx context.Context) ([]*domain.Link, error)
	Update(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id string) error
}

type BioRepository interface {
	// Get returns domain.ErrNotFound until the bio is first saved.
	Get(ctx context.Context) (*domain.Bio, error)
	Save(ctx context.Context, bio *domain.Bio) error
}

type SessionRepository interface {
	Create(ctx context.Context, prefix string, session *domain.Session) error
	Get(ctx context.Context, prefix, token string) (*domain.Session, error)
	Delete(ctx context.Context, prefix, token string) error
}

type LikeRepository interface {
	Exists(ctx context.Context, designID, userID string) (bool, error)
	Put(ctx context.Context, designID, userID string, at int64) error
	Delete(ctx context.Context, designID, userID string) error
	// DeleteAllForDesign removes every like marker on designID.
	DeleteAllForDesign(ctx context.Context, designID string) error
}

type AdminRepository interface {
	Exists(ctx context.Context) (bool, error)
	Get(ctx context.Context) (*domain.AdminCredentials, error)
	// CreateIfAbsent reports false when credentials already exist.
	CreateIfAbsent(ctx context.Context, creds *domain.AdminCredentials) (bool, error)
}

type Repositories struct {
	User    UserRepository
	Design  DesignRepository
	Post    PostRepository
	Link    LinkRepository
	Bio     BioRepository
	Session SessionRepository
	Like    LikeRepository
	Admin   AdminRepository
}
