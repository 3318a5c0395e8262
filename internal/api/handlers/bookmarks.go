package handlers

import (
	"net/http"

	"github.com/dom/devdreams-backend/internal/api/middleware"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type BookmarkHandler struct {
	bookmarkService *service.BookmarkService
	responder       *Responder
}

func NewBookmarkHandler(bookmarkService *service.BookmarkService, responder *Responder) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService, responder: responder}
}

type CreateBookmarkRequest struct {
	PostID string `json:"postId"`
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateBookmarkRequest
	if !decodeJSON(w, r, h.responder, &req) {
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	bookmark, err := h.bookmarkService.Create(r.Context(), userID, postID)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusCreated, "Post bookmarked successfully!", bookmark)
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookmarks, err := h.bookmarkService.ListForUser(r.Context(), userID)
	if err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "", bookmarks)
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.responder.Fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookmarkID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.responder.Fail(w, http.StatusBadRequest, "Invalid bookmark id")
		return
	}

	if err := h.bookmarkService.Delete(r.Context(), userID, bookmarkID); err != nil {
		h.responder.Error(w, err)
		return
	}
	h.responder.Success(w, http.StatusOK, "Bookmark removed successfully!", nil)
}
