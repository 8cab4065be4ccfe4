package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/domain"
)

func setSessionCookie(w http.ResponseWriter, name string, session *domain.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt(),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
