package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
	"github.com/google/uuid"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     "testuser_" + suffix,
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user through the service layer and returns it with
// the raw password.
func (b *UserBuilder) Build(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, err := ts.Services.User.Create(context.Background(), service.UserInput{
		Name:     b.name,
		Email:    b.email,
		Password: b.password,
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user, b.password
}

// AuthResponse matches the signup/signin response
type AuthResponse struct {
	Success bool               `json:"success"`
	User    domain.UserSummary `json:"user"`
}

// BuildAndSignIn signs the user up through the API and returns a client
// holding their session cookie.
func (b *UserBuilder) BuildAndSignIn(t *testing.T, ts *TestServer) (domain.UserSummary, *Client) {
	t.Helper()

	client := ts.NewClient(t)
	resp := client.Post("/api/auth/signup", map[string]string{
		"name":     b.name,
		"email":    b.email,
		"password": b.password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signup: unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	AssertJSONResponse(t, resp, &authResp)
	return authResp.User, client
}

// AdminCredentials are used by SetupAdmin.
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin-password"
)

// SetupAdmin creates the admin account if it does not exist yet.
func SetupAdmin(t *testing.T, ts *TestServer) {
	t.Helper()

	isSetup, err := ts.Services.Admin.IsSetup(context.Background())
	if err != nil {
		t.Fatalf("failed to check admin setup: %v", err)
	}
	if isSetup {
		return
	}

	err = ts.Services.Admin.Setup(context.Background(), service.AdminSetupInput{
		Email:    AdminEmail,
		Password: AdminPassword,
		SetupKey: AdminSetupKey,
	})
	if err != nil {
		t.Fatalf("failed to set up admin: %v", err)
	}
}

// NewAdminClient returns a client signed in as a regular user and logged
// in as the admin, which is what the admin API requires.
func NewAdminClient(t *testing.T, ts *TestServer) *Client {
	t.Helper()

	SetupAdmin(t, ts)
	_, client := NewUserBuilder().BuildAndSignIn(t, ts)

	resp := client.Post("/api/admin/login", map[string]string{
		"email":    AdminEmail,
		"password": AdminPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: unexpected status code: %d", resp.StatusCode)
	}
	return client
}

// DesignBuilder creates test designs owned by a user
type DesignBuilder struct {
	name          string
	designType    string
	fingerDesigns domain.FingerDesigns
	public        bool
}

func NewDesignBuilder() *DesignBuilder {
	return &DesignBuilder{
		name:          "design_" + uuid.New().String()[:8],
		designType:    domain.DesignTypeHolographic,
		fingerDesigns: domain.FingerDesigns{0: domain.DesignTypeHolographic},
		public:        true,
	}
}

func (b *DesignBuilder) WithName(name string) *DesignBuilder {
	b.name = name
	return b
}

func (b *DesignBuilder) WithType(designType string) *DesignBuilder {
	b.designType = designType
	return b
}

func (b *DesignBuilder) Private() *DesignBuilder {
	b.public = false
	return b
}

// Build creates the design for owner through the service layer.
func (b *DesignBuilder) Build(t *testing.T, ts *TestServer, ownerID string) *domain.Design {
	t.Helper()

	public := b.public
	design, err := ts.Services.Design.Create(context.Background(), &domain.Identity{UserID: ownerID}, service.DesignInput{
		Name:          b.name,
		Type:          b.designType,
		FingerDesigns: b.fingerDesigns,
		Public:        &public,
	})
	if err != nil {
		t.Fatalf("failed to create design: %v", err)
	}
	return design
}
