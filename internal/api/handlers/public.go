package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/service"
)

// PublicHandler serves the read-only content shown on the landing pages.
type PublicHandler struct {
	postService *service.PostService
	linkService *service.LinkService
	bioService  *service.BioService
}

func NewPublicHandler(postService *service.PostService, linkService *service.LinkService, bioService *service.BioService) *PublicHandler {
	return &PublicHandler{
		postService: postService,
		linkService: linkService,
		bioService:  bioService,
	}
}

func (h *PublicHandler) Bio(w http.ResponseWriter, r *http.Request) {
	bio, err := h.bioService.Get(r.Context())
	if err != nil {
		handleError(w, "handler.Bio", err, "Failed to fetch bio")
		return
	}
	writeJSON(w, http.StatusOK, bio)
}

func (h *PublicHandler) Links(w http.ResponseWriter, r *http.Request) {
	links, err := h.linkService.List(r.Context())
	if err != nil {
		handleError(w, "handler.Links", err, "Failed to fetch links")
		return
	}
	writeJSON(w, http.StatusOK, LinksResponse{Links: links})
}

func (h *PublicHandler) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		handleError(w, "handler.Posts", err, "Failed to fetch posts")
		return
	}
	writeJSON(w, http.StatusOK, PostsResponse{Posts: posts})
}
