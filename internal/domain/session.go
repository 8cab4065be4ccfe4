package domain

import (
	"encoding/json"
	"time"
)

// Session is a server-side login record. Token is the cookie value and is
// not part of the stored JSON.
type Session struct {
	Token   string `json:"-"`
	UserID  string `json:"userId,omitempty"`
	Email   string `json:"email,omitempty"`
	Expires int64  `json:"expires"`
}

func (s *Session) Expired(now time.Time) bool {
	return s.Expires < now.UnixMilli()
}

func (s *Session) ExpiresAt() time.Time {
	return time.UnixMilli(s.Expires)
}

func (s *Session) Identity() *Identity {
	return &Identity{UserID: s.UserID, Email: s.Email}
}

// Identity is the caller resolved from a valid session. A nil *Identity
// means an anonymous caller.
type Identity struct {
	UserID string
	Email  string
}

func ParseSession(data string) (*Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, ErrCorruptRecord
	}
	if s.Expires == 0 || (s.UserID == "" && s.Email == "") {
		return nil, ErrCorruptRecord
	}
	return &s, nil
}

// AdminCredentials is the single admin account.
type AdminCredentials struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	CreatedAt    int64  `json:"createdAt"`
}

func ParseAdminCredentials(data string) (*AdminCredentials, error) {
	var c AdminCredentials
	if err := json.Unmarshal([]byte(data), &c); err != nil || c.Email == "" || c.PasswordHash == "" {
		return nil, ErrCorruptRecord
	}
	return &c, nil
}
