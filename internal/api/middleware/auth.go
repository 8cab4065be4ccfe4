package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
)

type contextKey string

const (
	IdentityKey      contextKey = "identity"
	AdminIdentityKey contextKey = "adminIdentity"
)

// RequireAdmin rejects any request without a valid admin session before
// the handler runs.
func RequireAdmin(adminService *service.AdminService) func(http.Handler) http.Handler {
	cookieName := adminService.Sessions().Namespace().CookieName

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(cookieName); err == nil {
				token = c.Value
			}

			identity, err := adminService.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, domain.Message(err, "Unauthorized"))
					return
				}
				log.Printf("ERROR [middleware.RequireAdmin] session lookup failed: %v", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), AdminIdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the signed-in user, or nil for anonymous requests.
func GetIdentity(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(IdentityKey).(*domain.Identity)
	return identity
}

func GetAdminIdentity(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(AdminIdentityKey).(*domain.Identity)
	return identity
}

// WithIdentity attaches identity to ctx.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
