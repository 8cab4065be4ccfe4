package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminDesignHandler struct {
	designService *service.DesignService
}

func NewAdminDesignHandler(designService *service.DesignService) *AdminDesignHandler {
	return &AdminDesignHandler{designService: designService}
}

type AdminCreateDesignRequest struct {
	Name          string               `json:"name" validate:"required"`
	Type          string               `json:"type" validate:"required"`
	UserID        string               `json:"userId" validate:"required"`
	FingerDesigns domain.FingerDesigns `json:"fingerDesigns"`
	Public        *bool                `json:"public"`
}

type DesignsResponse struct {
	Designs []*domain.Design `json:"designs"`
}

func (h *AdminDesignHandler) List(w http.ResponseWriter, r *http.Request) {
	designs, err := h.designService.AdminList(r.Context())
	if err != nil {
		handleError(w, "handler.AdminListDesigns", err, "Failed to fetch designs")
		return
	}
	writeJSON(w, http.StatusOK, DesignsResponse{Designs: designs})
}

func (h *AdminDesignHandler) Get(w http.ResponseWriter, r *http.Request) {
	design, err := h.designService.AdminGet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.AdminGetDesign", err, "Failed to fetch design")
		return
	}
	writeJSON(w, http.StatusOK, design)
}

func (h *AdminDesignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AdminCreateDesignRequest
	if err := bind(r, &req, "Name, type, and userId are required"); err != nil {
		handleError(w, "handler.AdminCreateDesign", err, "Failed to create design")
		return
	}

	design, err := h.designService.AdminCreate(r.Context(), req.UserID, service.DesignInput{
		Name:          req.Name,
		Type:          req.Type,
		FingerDesigns: req.FingerDesigns,
		Public:        req.Public,
	})
	if err != nil {
		handleError(w, "handler.AdminCreateDesign", err, "Failed to create design")
		return
	}

	writeJSON(w, http.StatusOK, design)
}

func (h *AdminDesignHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDesignRequest
	if err := bind(r, &req, ""); err != nil {
		handleError(w, "handler.AdminUpdateDesign", err, "Failed to update design")
		return
	}

	design, err := h.designService.AdminUpdate(r.Context(), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		handleError(w, "handler.AdminUpdateDesign", err, "Failed to update design")
		return
	}
	writeJSON(w, http.StatusOK, design)
}

func (h *AdminDesignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.designService.AdminDelete(r.Context(), id); err != nil {
		handleError(w, "handler.AdminDeleteDesign", err, "Failed to delete design")
		return
	}
	logAdminAction(r, "deleted design", id)
	writeJSON(w, http.StatusOK, ok)
}

// Feature toggles the design in or out of the featured type.
func (h *AdminDesignHandler) Feature(w http.ResponseWriter, r *http.Request) {
	design, err := h.designService.ToggleFeatured(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.FeatureDesign", err, "Failed to update design")
		return
	}
	writeJSON(w, http.StatusOK, design)
}
