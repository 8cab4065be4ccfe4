package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminUserHandler struct {
	userService *service.UserService
}

func NewAdminUserHandler(userService *service.UserService) *AdminUserHandler {
	return &AdminUserHandler{userService: userService}
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UsersResponse struct {
	Users []*domain.User `json:"users"`
}

func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		handleError(w, "handler.AdminListUsers", err, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, UsersResponse{Users: users})
}

func (h *AdminUserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.AdminGetUser", err, "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminUserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := bind(r, &req, "Name, email, and password are required"); err != nil {
		handleError(w, "handler.AdminCreateUser", err, "Failed to create user")
		return
	}

	user, err := h.userService.Create(r.Context(), service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, "handler.AdminCreateUser", err, "Failed to create user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminUserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := bind(r, &req, ""); err != nil {
		handleError(w, "handler.AdminUpdateUser", err, "Failed to update user")
		return
	}

	user, err := h.userService.Update(r.Context(), chi.URLParam(r, "id"), service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, "handler.AdminUpdateUser", err, "Failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete removes the user together with every design they own.
func (h *AdminUserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.userService.Delete(r.Context(), id); err != nil {
		handleError(w, "handler.AdminDeleteUser", err, "Failed to delete user")
		return
	}
	logAdminAction(r, "deleted user", id)
	writeJSON(w, http.StatusOK, ok)
}
