package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/aircast/aircast/internal/api/models"
	"github.com/aircast/aircast/internal/api/response"
	"github.com/aircast/aircast/internal/bookmark"
)

// BookmarkService maintains the saved station list.
type BookmarkService interface {
	List(ctx context.Context) ([]bookmark.Bookmark, error)
	Add(ctx context.Context, snap bookmark.Snapshot) (string, bool, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// BookmarkHandler handles bookmark endpoints.
type BookmarkHandler struct {
	service BookmarkService
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(service BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// ListBookmarks handles GET /v1/bookmarks - list saved stations in order.
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "Bookmark storage unavailable")
		return
	}

	response.JSON(w, r, http.StatusOK, models.BookmarkListResponse{
		Bookmarks: list,
		Count:     len(list),
	})
}

// ToggleBookmark handles POST /v1/bookmarks - save a station snapshot, or
// remove the existing bookmark when the same station is posted again.
func (h *BookmarkHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	var snap bookmark.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		response.BadRequest(w, r, "Invalid request body", nil)
		return
	}

	id, added, err := h.service.Add(r.Context(), snap)
	switch {
	case errors.Is(err, bookmark.ErrBookmarkNotFound):
		response.BadRequest(w, r, "Station snapshot has no identity", nil)
		return
	case errors.Is(err, bookmark.ErrStorage):
		response.ServiceUnavailable(w, r, "Bookmark storage unavailable")
		return
	case err != nil:
		response.InternalError(w, r, "Unexpected error")
		return
	}

	response.JSON(w, r, http.StatusOK, models.BookmarkToggleResponse{
		ID:    id,
		Added: added,
	})
}

// RemoveBookmark handles DELETE /v1/bookmarks/{bookmarkId}.
func (h *BookmarkHandler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookmarkId")
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	err := h.service.Remove(r.Context(), id)
	switch {
	case errors.Is(err, bookmark.ErrBookmarkNotFound):
		response.NotFound(w, r, "Bookmark not found")
		return
	case errors.Is(err, bookmark.ErrStorage):
		response.ServiceUnavailable(w, r, "Bookmark storage unavailable")
		return
	case err != nil:
		response.InternalError(w, r, "Unexpected error")
		return
	}

	response.NoContent(w, r)
}

// ClearBookmarks handles DELETE /v1/bookmarks - remove all saved stations.
func (h *BookmarkHandler) ClearBookmarks(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		response.ServiceUnavailable(w, r, "Bookmark storage unavailable")
		return
	}

	response.NoContent(w, r)
}
