package handlers

import (
	"net/http"

	"github.com/dom/devdreams-backend/internal/api/middleware"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PostHandler struct {
	postService *service.PostService
	responder   *Responder
}

func NewPostHandler(postService *service.PostService, responder *Responder) *PostHandler {
	return &PostHandler{postService: postService, responder: responder}
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreatePostRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}

	var errs []FieldError
	if req.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	}
	if req.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "Content is required"})
	}
	if len(errs) > 0 {
		h.responder.ValidationError(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), service.CreatePostInput{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
	})
	if err != nil {
		h.responder.Error(w, err)
		return
	}

	h.responder.Success(w, http.StatusCreated, "Post created successfully!", post)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "", posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "", post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), userID, id); err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "Post Deleted successfully!", nil)
}

func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	result, err := h.postService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "", result)
}
