package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
)

// SignInPath is where unauthenticated page requests are sent.
const SignInPath = "/auth/sign-in"

var publicPrefixes = []string{
	"/assets/",
	"/fonts/",
	"/_next/",
	"/auth/",
	"/api/auth/",
}

var publicPaths = map[string]bool{
	"/":                 true,
	"/health":           true,
	"/favicon.ico":      true,
	"/api/auth":         true,
	"/admin/login":      true,
	"/admin/setup":      true,
	"/api/admin/login":  true,
	"/api/admin/logout": true,
	"/api/admin/setup":  true,
}

// publicReads are collections anyone may read.
var publicReads = map[string]bool{
	"/api/designs": true,
	"/api/bio":     true,
	"/api/links":   true,
	"/api/posts":   true,
}

// IsPublicPath reports whether a request may pass the edge filter without
// a user session.
func IsPublicPath(method, path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	if publicReads[path] {
		return true
	}
	// GET /api/designs/{id}; the owner/visibility check happens in the handler.
	if id, ok := strings.CutPrefix(path, "/api/designs/"); ok {
		return id != "" && !strings.Contains(id, "/")
	}
	return false
}

// SessionFilter resolves the user session cookie on every request. A valid
// session puts the caller's identity in the request context. Protected
// paths without one get a 401 under /api/ and a redirect to the sign-in
// page otherwise.
func SessionFilter(authService *service.AuthService) func(http.Handler) http.Handler {
	cookieName := authService.Sessions().Namespace().CookieName

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			public := IsPublicPath(r.Method, r.URL.Path)

			var token string
			if c, err := r.Cookie(cookieName); err == nil {
				token = c.Value
			}

			var (
				identity *domain.Identity
				err      error = service.ErrInvalidSession
			)
			if token != "" {
				identity, err = authService.Authenticate(r.Context(), token)
			}

			if err == nil {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
				return
			}

			if !errors.Is(err, domain.ErrUnauthorized) {
				log.Printf("ERROR [middleware.SessionFilter] session lookup failed: %v", err)
				if !public {
					writeError(w, http.StatusInternalServerError, "Internal server error")
					return
				}
			}

			if public {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/api/") {
				writeError(w, http.StatusUnauthorized, domain.Message(err, "Unauthorized"))
				return
			}
			http.Redirect(w, r, SignInPath, http.StatusFound)
		})
	}
}
