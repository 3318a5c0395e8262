package handlers

import (
	"net/http"

	"github.com/dom/devdreams-backend/internal/api/middleware"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CommentHandler struct {
	commentService *service.CommentService
	responder      *Responder
}

func NewCommentHandler(commentService *service.CommentService, responder *Responder) *CommentHandler {
	return &CommentHandler{commentService: commentService, responder: responder}
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req CreateCommentRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}
	if req.Content == "" {
		h.responder.ValidationError(w, []FieldError{{Field: "content", Message: "Content is required"}})
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, postID, req.Content)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusCreated, "Comment created successfully!", comment)
}

func (h *CommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	comments, err := h.commentService.ListForPost(r.Context(), postID)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "", comments)
}

func (h *CommentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	var req CreateCommentRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}
	if req.Content == "" {
		h.responder.ValidationError(w, []FieldError{{Field: "content", Message: "Content is required"}})
		return
	}

	reply, err := h.commentService.Reply(r.Context(), userID, commentID, req.Content)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusCreated, "Reply created successfully!", reply)
}

func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	result, err := h.commentService.ToggleLike(r.Context(), userID, commentID)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "", result)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentId"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), userID, commentID); err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "Comment deleted successfully!", nil)
}
