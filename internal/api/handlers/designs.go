package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/api/middleware"
	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
	"github.com/go-chi/chi/v5"
)

type DesignHandler struct {
	designService *service.DesignService
}

func NewDesignHandler(designService *service.DesignService) *DesignHandler {
	return &DesignHandler{designService: designService}
}

type CreateDesignRequest struct {
	Name          string               `json:"name" validate:"required"`
	Type          string               `json:"type" validate:"required"`
	FingerDesigns domain.FingerDesigns `json:"fingerDesigns"`
	Public        *bool                `json:"public"`
}

type UpdateDesignRequest struct {
	Name          string               `json:"name"`
	Type          string               `json:"type"`
	FingerDesigns domain.FingerDesigns `json:"fingerDesigns"`
	Public        *bool                `json:"public"`
}

func (req UpdateDesignRequest) patch() service.DesignPatch {
	return service.DesignPatch{
		Name:          req.Name,
		Type:          req.Type,
		FingerDesigns: req.FingerDesigns,
		Public:        req.Public,
	}
}

type DesignListResponse struct {
	Designs    []*domain.Design `json:"designs"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type DesignResponse struct {
	Success bool           `json:"success"`
	Design  *domain.Design `json:"design"`
}

type LikeResponse struct {
	Success bool `json:"success"`
	Liked   bool `json:"liked"`
	Likes   int  `json:"likes"`
}

// List serves the public gallery: GET /api/designs?page=&limit=&type=&userId=
func (h *DesignHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", service.DefaultPage)
	if err != nil {
		handleError(w, "handler.ListDesigns", err, "Failed to fetch designs")
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultLimit)
	if err != nil {
		handleError(w, "handler.ListDesigns", err, "Failed to fetch designs")
		return
	}

	result, err := h.designService.List(r.Context(), service.DesignQuery{
		Page:   page,
		Limit:  limit,
		Type:   r.URL.Query().Get("type"),
		UserID: r.URL.Query().Get("userId"),
	})
	if err != nil {
		handleError(w, "handler.ListDesigns", err, "Failed to fetch designs")
		return
	}

	writeJSON(w, http.StatusOK, DesignListResponse{
		Designs:    result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

func (h *DesignHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.GetIdentity(r.Context())

	design, err := h.designService.Get(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.GetDesign", err, "Failed to fetch design")
		return
	}
	writeJSON(w, http.StatusOK, design)
}

func (h *DesignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDesignRequest
	if err := bind(r, &req, "Name and type are required"); err != nil {
		handleError(w, "handler.CreateDesign", err, "Failed to create design")
		return
	}

	design, err := h.designService.Create(r.Context(), middleware.GetIdentity(r.Context()), service.DesignInput{
		Name:          req.Name,
		Type:          req.Type,
		FingerDesigns: req.FingerDesigns,
		Public:        req.Public,
	})
	if err != nil {
		handleError(w, "handler.CreateDesign", err, "Failed to create design")
		return
	}

	writeJSON(w, http.StatusOK, DesignResponse{Success: true, Design: design})
}

func (h *DesignHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDesignRequest
	if err := bind(r, &req, ""); err != nil {
		handleError(w, "handler.UpdateDesign", err, "Failed to update design")
		return
	}

	design, err := h.designService.Update(r.Context(), middleware.GetIdentity(r.Context()), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		handleError(w, "handler.UpdateDesign", err, "Failed to update design")
		return
	}

	writeJSON(w, http.StatusOK, DesignResponse{Success: true, Design: design})
}

func (h *DesignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.designService.Delete(r.Context(), middleware.GetIdentity(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.DeleteDesign", err, "Failed to delete design")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (h *DesignHandler) Like(w http.ResponseWriter, r *http.Request) {
	result, err := h.designService.ToggleLike(r.Context(), middleware.GetIdentity(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.LikeDesign", err, "Failed to like design")
		return
	}
	writeJSON(w, http.StatusOK, LikeResponse{Success: true, Liked: result.Liked, Likes: result.Likes})
}
