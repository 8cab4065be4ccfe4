package handlers

import (
	"net/http"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
	"github.com/go-chi/chi/v5"
)

type AdminContentHandler struct {
	postService  *service.PostService
	linkService  *service.LinkService
	bioService   *service.BioService
	statsService *service.StatsService
}

func NewAdminContentHandler(
	postService *service.PostService,
	linkService *service.LinkService,
	bioService *service.BioService,
	statsService *service.StatsService,
) *AdminContentHandler {
	return &AdminContentHandler{
		postService:  postService,
		linkService:  linkService,
		bioService:   bioService,
		statsService: statsService,
	}
}

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required"`
	Link      string `json:"link" validate:"required,url"`
	ImageURL  string `json:"imageUrl" validate:"required,url"`
	CreatorID string `json:"creatorId" validate:"required"`
}

type UpdatePostRequest struct {
	Title     string `json:"title"`
	Link      string `json:"link" validate:"omitempty,url"`
	ImageURL  string `json:"imageUrl" validate:"omitempty,url"`
	CreatorID string `json:"creatorId"`
}

type CreateLinkRequest struct {
	Title    string `json:"title" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	Category string `json:"category" validate:"required"`
}

type UpdateLinkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url" validate:"omitempty,url"`
	Category string `json:"category"`
}

type UpdateBioRequest struct {
	Title   string `json:"title" validate:"required"`
	Tagline string `json:"tagline" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type PostsResponse struct {
	Posts []*domain.Post `json:"posts"`
}

type LinksResponse struct {
	Links []*domain.Link `json:"links"`
}

func (h *AdminContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		handleError(w, "handler.AdminListPosts", err, "Failed to fetch posts")
		return
	}
	writeJSON(w, http.StatusOK, PostsResponse{Posts: posts})
}

func (h *AdminContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.AdminGetPost", err, "Failed to fetch post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminContentHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := bind(r, &req, "Title, link, image URL, and creator ID are required"); err != nil {
		handleError(w, "handler.AdminCreatePost", err, "Failed to create post")
		return
	}

	post, err := h.postService.Create(r.Context(), service.PostInput{
		Title:     req.Title,
		Link:      req.Link,
		ImageURL:  req.ImageURL,
		CreatorID: req.CreatorID,
	})
	if err != nil {
		handleError(w, "handler.AdminCreatePost", err, "Failed to create post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminContentHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := bind(r, &req, ""); err != nil {
		handleError(w, "handler.AdminUpdatePost", err, "Failed to update post")
		return
	}

	post, err := h.postService.Update(r.Context(), chi.URLParam(r, "id"), service.PostInput{
		Title:     req.Title,
		Link:      req.Link,
		ImageURL:  req.ImageURL,
		CreatorID: req.CreatorID,
	})
	if err != nil {
		handleError(w, "handler.AdminUpdatePost", err, "Failed to update post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *AdminContentHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.postService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, "handler.AdminDeletePost", err, "Failed to delete post")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (h *AdminContentHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.linkService.List(r.Context())
	if err != nil {
		handleError(w, "handler.AdminListLinks", err, "Failed to fetch links")
		return
	}
	writeJSON(w, http.StatusOK, LinksResponse{Links: links})
}

func (h *AdminContentHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.linkService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "handler.AdminGetLink", err, "Failed to fetch link")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *AdminContentHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := bind(r, &req, "Title, URL, and category are required"); err != nil {
		handleError(w, "handler.AdminCreateLink", err, "Failed to create link")
		return
	}

	link, err := h.linkService.Create(r.Context(), service.LinkInput{
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	})
	if err != nil {
		handleError(w, "handler.AdminCreateLink", err, "Failed to create link")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *AdminContentHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	var req UpdateLinkRequest
	if err := bind(r, &req, ""); err != nil {
		handleError(w, "handler.AdminUpdateLink", err, "Failed to update link")
		return
	}

	link, err := h.linkService.Update(r.Context(), chi.URLParam(r, "id"), service.LinkInput{
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	})
	if err != nil {
		handleError(w, "handler.AdminUpdateLink", err, "Failed to update link")
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *AdminContentHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	if err := h.linkService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, "handler.AdminDeleteLink", err, "Failed to delete link")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (h *AdminContentHandler) GetBio(w http.ResponseWriter, r *http.Request) {
	bio, err := h.bioService.Get(r.Context())
	if err != nil {
		handleError(w, "handler.AdminGetBio", err, "Failed to fetch bio")
		return
	}
	writeJSON(w, http.StatusOK, bio)
}

func (h *AdminContentHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	var req UpdateBioRequest
	if err := bind(r, &req, "Title, tagline, and content are required"); err != nil {
		handleError(w, "handler.AdminUpdateBio", err, "Failed to update bio")
		return
	}

	bio, err := h.bioService.Update(r.Context(), service.BioInput{
		Title:   req.Title,
		Tagline: req.Tagline,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, "handler.AdminUpdateBio", err, "Failed to update bio")
		return
	}
	writeJSON(w, http.StatusOK, bio)
}

func (h *AdminContentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Stats(r.Context())
	if err != nil {
		handleError(w, "handler.AdminStats", err, "Failed to fetch stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminContentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.statsService.Dashboard(r.Context())
	if err != nil {
		handleError(w, "handler.AdminDashboard", err, "Failed to fetch dashboard data")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
