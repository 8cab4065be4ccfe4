package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/unique-nails/internal/api"
	"github.com/dom/unique-nails/internal/config"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/dom/unique-nails/internal/repository/kv"
	"github.com/dom/unique-nails/internal/service"
	"github.com/dom/unique-nails/internal/store"
	"github.com/dom/unique-nails/internal/store/memory"
	"golang.org/x/crypto/bcrypt"
)

// AdminSetupKey is the setup key TestConfig accepts.
const AdminSetupKey = "test-setup-key"

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:            "0", // Random port
		Environment:     "test",
		AllowedOrigins:  []string{"http://localhost:3000"},
		StoreBackend:    config.BackendMemory,
		AdminSetupKey:   AdminSetupKey,
		UserSessionTTL:  7 * 24 * time.Hour,
		AdminSessionTTL: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost, // Fast hashing for tests
		BioCacheTTL:     time.Minute,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	Store    store.Store
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server backed by an in-memory store
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithStore(t, memory.New())
}

// NewTestServerWithStore creates a test server on top of the given store
func NewTestServerWithStore(t *testing.T, s store.Store) *TestServer {
	t.Helper()

	cfg := TestConfig()
	repos := kv.NewRepositories(s)
	services := service.NewServices(repos, cfg)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Store:    s,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + "/api" + path
}
