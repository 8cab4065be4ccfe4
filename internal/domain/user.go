package domain

import (
	"encoding/json"
	"slices"
)

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	ProfileImage string   `json:"profileImage,omitempty"`
	CreatedAt    int64    `json:"createdAt"`
	Designs      []string `json:"designs"`
	Followers    []string `json:"followers"`
	Following    []string `json:"following"`
}

// UserSummary is the identity view returned by the auth endpoints.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUser(id, name, email string, createdAt int64) *User {
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
		Designs:   []string{},
		Followers: []string{},
		Following: []string{},
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (u *User) AddDesign(designID string) {
	if !slices.Contains(u.Designs, designID) {
		u.Designs = append(u.Designs, designID)
	}
}

func (u *User) RemoveDesign(designID string) {
	u.Designs = slices.DeleteFunc(u.Designs, func(id string) bool { return id == designID })
}

// ParseUser decodes a stored user record. Records without an id or email
// are rejected.
func ParseUser(data string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, ErrCorruptRecord
	}
	if u.ID == "" || u.Email == "" {
		return nil, ErrCorruptRecord
	}
	if u.Designs == nil {
		u.Designs = []string{}
	}
	if u.Followers == nil {
		u.Followers = []string{}
	}
	if u.Following == nil {
		u.Following = []string{}
	}
	return &u, nil
}
