package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dom/unique-nails/internal/api/middleware"
	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository/kv"
	"github.com/dom/unique-nails/internal/service"
	"github.com/dom/unique-nails/internal/store"
	"github.com/dom/unique-nails/internal/store/memory"
	"github.com/dom/unique-nails/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPublicPath(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/", true},
		{http.MethodGet, "/health", true},
		{http.MethodGet, "/favicon.ico", true},
		{http.MethodGet, "/assets/app.js", true},
		{http.MethodGet, "/_next/static/chunk.js", true},
		{http.MethodGet, "/auth/sign-in", true},
		{http.MethodPost, "/api/auth/signup", true},
		{http.MethodPost, "/api/admin/login", true},
		{http.MethodPost, "/api/admin/setup", true},
		{http.MethodGet, "/admin/login", true},
		{http.MethodGet, "/api/designs", true},
		{http.MethodHead, "/api/designs", true},
		{http.MethodGet, "/api/designs/abc", true},
		{http.MethodGet, "/api/bio", true},
		{http.MethodGet, "/api/links", true},
		{http.MethodGet, "/api/posts", true},

		{http.MethodPost, "/api/designs", false},
		{http.MethodPut, "/api/designs/abc", false},
		{http.MethodDelete, "/api/designs/abc", false},
		{http.MethodPost, "/api/designs/abc/like", false},
		{http.MethodGet, "/api/designs/abc/like", false},
		{http.MethodGet, "/api/admin/users", false},
		{http.MethodGet, "/admin", false},
		{http.MethodGet, "/profile", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, middleware.IsPublicPath(tt.method, tt.path))
		})
	}
}

func TestSessionFilter(t *testing.T) {
	ctx := context.Background()
	repos := kv.NewRepositories(memory.New())
	cfg := testutil.TestConfig()

	now := time.Now()
	sessions := service.NewSessionManager(repos.Session, service.UserSessions(time.Hour))
	sessions.SetClock(func() time.Time { return now })
	authService := service.NewAuthService(repos.User, sessions, cfg)

	valid, err := sessions.Create(ctx, domain.Identity{UserID: "user-1"})
	require.NoError(t, err)

	sessions.SetClock(func() time.Time { return now.Add(-2 * time.Hour) })
	expired, err := sessions.Create(ctx, domain.Identity{UserID: "user-2"})
	require.NoError(t, err)
	sessions.SetClock(func() time.Time { return now })

	var seen *domain.Identity
	handler := middleware.SessionFilter(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetIdentity(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
		wantUserID     string
		wantBody       string
		wantLocation   string
	}{
		{
			name:           "public path anonymous",
			method:         http.MethodGet,
			path:           "/api/designs",
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "public path still resolves a valid session",
			method:         http.MethodGet,
			path:           "/api/designs/abc",
			token:          valid.Token,
			expectedStatus: http.StatusNoContent,
			wantUserID:     "user-1",
		},
		{
			name:           "protected api with session",
			method:         http.MethodPost,
			path:           "/api/designs",
			token:          valid.Token,
			expectedStatus: http.StatusNoContent,
			wantUserID:     "user-1",
		},
		{
			name:           "protected api without session",
			method:         http.MethodPost,
			path:           "/api/designs",
			expectedStatus: http.StatusUnauthorized,
			wantBody:       `{"error":"Unauthorized"}`,
		},
		{
			name:           "protected api with unknown token",
			method:         http.MethodPost,
			path:           "/api/designs",
			token:          "bogus",
			expectedStatus: http.StatusUnauthorized,
			wantBody:       `{"error":"Unauthorized"}`,
		},
		{
			name:           "protected api with expired session",
			method:         http.MethodPost,
			path:           "/api/designs/abc/like",
			token:          expired.Token,
			expectedStatus: http.StatusUnauthorized,
			wantBody:       `{"error":"Session expired"}`,
		},
		{
			name:           "protected page redirects",
			method:         http.MethodGet,
			path:           "/profile",
			expectedStatus: http.StatusFound,
			wantLocation:   middleware.SignInPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: "session_id", Value: tt.token})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.wantUserID != "" {
				require.NotNil(t, seen)
				assert.Equal(t, tt.wantUserID, seen.UserID)
			} else {
				assert.Nil(t, seen)
			}
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

// unreachableStore fails every session read, as a store outage would.
type unreachableStore struct {
	store.Store
}

func (s *unreachableStore) Get(ctx context.Context, key string) (string, error) {
	if strings.HasPrefix(key, "session:") {
		return "", errors.New("connection refused")
	}
	return s.Store.Get(ctx, key)
}

func TestSessionFilter_StoreFailure(t *testing.T) {
	repos := kv.NewRepositories(&unreachableStore{Store: memory.New()})
	cfg := testutil.TestConfig()
	sessions := service.NewSessionManager(repos.Session, service.UserSessions(time.Hour))
	authService := service.NewAuthService(repos.User, sessions, cfg)

	var reached bool
	handler := middleware.SessionFilter(authService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		assert.Nil(t, middleware.GetIdentity(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		wantReached    bool
	}{
		{
			name:           "protected path fails closed",
			method:         http.MethodPost,
			path:           "/api/designs",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "public path continues anonymously",
			method:         http.MethodGet,
			path:           "/api/designs",
			expectedStatus: http.StatusNoContent,
			wantReached:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.AddCookie(&http.Cookie{Name: "session_id", Value: "some-token"})
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.wantReached, reached)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	repos := kv.NewRepositories(memory.New())
	cfg := testutil.TestConfig()

	adminSessions := service.NewSessionManager(repos.Session, service.AdminSessions(time.Hour))
	userSessions := service.NewSessionManager(repos.Session, service.UserSessions(time.Hour))
	adminService := service.NewAdminService(repos.Admin, adminSessions, cfg)

	adminSession, err := adminSessions.Create(ctx, domain.Identity{Email: "admin@example.com"})
	require.NoError(t, err)
	userSession, err := userSessions.Create(ctx, domain.Identity{UserID: "user-1"})
	require.NoError(t, err)

	handler := middleware.RequireAdmin(adminService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.GetAdminIdentity(r.Context())
		require.NotNil(t, identity)
		assert.Equal(t, "admin@example.com", identity.Email)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name           string
		cookie         *http.Cookie
		expectedStatus int
	}{
		{name: "admin session", cookie: &http.Cookie{Name: "admin_session_id", Value: adminSession.Token}, expectedStatus: http.StatusNoContent},
		{name: "no cookie", expectedStatus: http.StatusUnauthorized},
		{name: "user token in admin cookie", cookie: &http.Cookie{Name: "admin_session_id", Value: userSession.Token}, expectedStatus: http.StatusUnauthorized},
		{name: "user cookie only", cookie: &http.Cookie{Name: "session_id", Value: userSession.Token}, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
