package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/api/middleware"
	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
)

type AuthHandler struct {
	authService   *service.AuthService
	secureCookies bool
}

func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Success bool               `json:"success"`
	User    domain.UserSummary `json:"user"`
}

type MeResponse struct {
	User *domain.UserSummary `json:"user"`
}

func (h *AuthHandler) cookieName() string {
	return h.authService.Sessions().Namespace().CookieName
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := bind(r, &req, "Name, email, and password are required"); err != nil {
		handleError(w, "handler.Signup", err, "Signup failed")
		return
	}

	result, err := h.authService.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, "handler.Signup", err, "Signup failed")
		return
	}

	setSessionCookie(w, h.cookieName(), result.Session, h.secureCookies)
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: result.User.Summary()})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := bind(r, &req, "Email and password are required"); err != nil {
		handleError(w, "handler.Signin", err, "Signin failed")
		return
	}

	result, err := h.authService.Signin(r.Context(), service.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, "handler.Signin", err, "Signin failed")
		return
	}

	setSessionCookie(w, h.cookieName(), result.Session, h.secureCookies)
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: result.User.Summary()})
}

// Signout always clears the cookie, even when the session was already gone.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	if token := cookieValue(r, h.cookieName()); token != "" {
		if err := h.authService.Signout(r.Context(), token); err != nil {
			handleError(w, "handler.Signout", err, "Signout failed")
			return
		}
	}

	clearSessionCookie(w, h.cookieName(), h.secureCookies)
	writeJSON(w, http.StatusOK, ok)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Me(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		handleError(w, "handler.Me", err, "Failed to load user")
		return
	}

	var resp MeResponse
	if user != nil {
		summary := user.Summary()
		resp.User = &summary
	}
	writeJSON(w, http.StatusOK, resp)
}
