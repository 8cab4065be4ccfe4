package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/service"
)

type AdminAuthHandler struct {
	adminService  *service.AdminService
	secureCookies bool
}

func NewAdminAuthHandler(adminService *service.AdminService, secureCookies bool) *AdminAuthHandler {
	return &AdminAuthHandler{adminService: adminService, secureCookies: secureCookies}
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminSetupRequest is checked by the service so that an existing account
// is reported before anything about the payload.
type AdminSetupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	SetupKey string `json:"setupKey"`
}

type SetupStatusResponse struct {
	IsSetup bool `json:"isSetup"`
}

type SetupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *AdminAuthHandler) cookieName() string {
	return h.adminService.Sessions().Namespace().CookieName
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := bind(r, &req, "Email and password are required"); err != nil {
		handleError(w, "handler.AdminLogin", err, "Login failed")
		return
	}

	session, err := h.adminService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, "handler.AdminLogin", err, "Login failed")
		return
	}

	setSessionCookie(w, h.cookieName(), session, h.secureCookies)
	writeJSON(w, http.StatusOK, ok)
}

func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := cookieValue(r, h.cookieName()); token != "" {
		if err := h.adminService.Logout(r.Context(), token); err != nil {
			handleError(w, "handler.AdminLogout", err, "Logout failed")
			return
		}
	}

	clearSessionCookie(w, h.cookieName(), h.secureCookies)
	writeJSON(w, http.StatusOK, ok)
}

func (h *AdminAuthHandler) SetupStatus(w http.ResponseWriter, r *http.Request) {
	isSetup, err := h.adminService.IsSetup(r.Context())
	if err != nil {
		handleError(w, "handler.AdminSetupStatus", err, "Failed to check setup status")
		return
	}
	writeJSON(w, http.StatusOK, SetupStatusResponse{IsSetup: isSetup})
}

func (h *AdminAuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req AdminSetupRequest
	if err := bind(r, &req, ""); err != nil {
		handleError(w, "handler.AdminSetup", err, "Setup failed")
		return
	}

	err := h.adminService.Setup(r.Context(), service.AdminSetupInput{
		Email:    req.Email,
		Password: req.Password,
		SetupKey: req.SetupKey,
	})
	if err != nil {
		handleError(w, "handler.AdminSetup", err, "Setup failed")
		return
	}

	writeJSON(w, http.StatusOK, SetupResponse{
		Success: true,
		Message: "Admin account created successfully",
	})
}
