package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = domain.Unauthorized("Unauthorized")
	ErrSessionExpired = domain.Unauthorized("Session expired")
)

// SessionNamespace isolates one identity domain. Tokens issued in one
// namespace are never found by the other.
type SessionNamespace struct {
	Prefix     string
	CookieName string
	TTL        time.Duration
}

func UserSessions(ttl time.Duration) SessionNamespace {
	return SessionNamespace{Prefix: "session:", CookieName: "session_id", TTL: ttl}
}

func AdminSessions(ttl time.Duration) SessionNamespace {
	return SessionNamespace{Prefix: "admin-session:", CookieName: "admin_session_id", TTL: ttl}
}

type SessionManager struct {
	repo repository.SessionRepository
	ns   SessionNamespace
	now  func() time.Time
}

func NewSessionManager(repo repository.SessionRepository, ns SessionNamespace) *SessionManager {
	return &SessionManager{repo: repo, ns: ns, now: time.Now}
}

// SetClock replaces the time source used for expiry.
func (m *SessionManager) SetClock(now func() time.Time) {
	m.now = now
}

func (m *SessionManager) Namespace() SessionNamespace {
	return m.ns
}

// Create issues a new random token for identity.
func (m *SessionManager) Create(ctx context.Context, identity domain.Identity) (*domain.Session, error) {
	session := &domain.Session{
		Token:   uuid.NewString(),
		UserID:  identity.UserID,
		Email:   identity.Email,
		Expires: m.now().Add(m.ns.TTL).UnixMilli(),
	}

	if err := m.repo.Create(ctx, m.ns.Prefix, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Validate resolves token to its session. Unknown and unreadable tokens
// return ErrInvalidSession; an expired session is deleted and reported as
// ErrSessionExpired.
func (m *SessionManager) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := m.repo.Get(ctx, m.ns.Prefix, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if errors.Is(err, domain.ErrCorruptRecord) {
		m.discard(ctx, token)
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(m.now()) {
		m.discard(ctx, token)
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Destroy deletes the session. Deleting an unknown token is not an error.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.repo.Delete(ctx, m.ns.Prefix, token)
}

func (m *SessionManager) discard(ctx context.Context, token string) {
	if err := m.repo.Delete(ctx, m.ns.Prefix, token); err != nil {
		log.Printf("ERROR [service.SessionManager] failed to delete session %s%s: %v", m.ns.Prefix, token, err)
	}
}
