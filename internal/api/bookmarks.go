package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/metrics"
	"github.com/joestump/bookmarks/internal/store"
)

type bookmarkCtxKey struct{}

// bookmarksAPIHandler provides REST handlers for bookmark management.
type bookmarksAPIHandler struct {
	bookmarks store.BookmarkRepository
	log       logger.Logger
}

// registerBookmarkRoutes registers the collection and item routes on r.
// r is expected to be mounted at /bookmarks.
func registerBookmarkRoutes(r chi.Router, bookmarks store.BookmarkRepository, log logger.Logger) {
	h := &bookmarksAPIHandler{bookmarks: bookmarks, log: log}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.bookmarkCtx)
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		r.Patch("/", h.Update)
	})
}

// List returns every stored bookmark.
// GET /bookmarks
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarks.ListAll(r.Context())
	if err != nil {
		serverError(w, r, h.log, err)
		return
	}

	resp := make([]BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, serializeBookmark(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create validates the body and stores a new bookmark. title, url and rating
// are required; description defaults to an empty string.
// POST /bookmarks
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookmarkRequest
	if err := decodeBody(r, &req); err != nil {
		h.log.Error("invalid bookmark body", logger.Error(err))
		writeText(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	if isBlank(req.Title) || isBlank(req.URL) || isMissing(req.Rating) {
		h.log.Error("bookmark title, url and rating are required")
		writeText(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	rating, err := store.ParseRating(req.Rating)
	if err != nil {
		h.log.Error("invalid bookmark rating", logger.Error(err))
		writeText(w, http.StatusBadRequest, msgInvalidRating)
		return
	}

	if err := store.ValidateURL(*req.URL); err != nil {
		h.log.Error("invalid bookmark url", logger.String("url", *req.URL))
		writeText(w, http.StatusBadRequest, msgInvalidURL)
		return
	}

	fields := store.BookmarkFields{
		Title:  *req.Title,
		URL:    *req.URL,
		Rating: rating,
	}
	if req.Description != nil {
		fields.Description = *req.Description
	}

	b, err := h.bookmarks.Insert(r.Context(), fields)
	if err != nil {
		serverError(w, r, h.log, err)
		return
	}
	metrics.BookmarksCreatedTotal.Inc()
	metrics.BookmarksTotal.Inc()
	h.log.Info("bookmark created", logger.Int64("id", b.ID))

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(b.ID, 10)))
	writeJSON(w, http.StatusCreated, serializeBookmark(b))
}

// bookmarkCtx resolves the {id} path parameter to a stored bookmark before
// any item handler runs. Ids that are not integers cannot exist and are
// reported as not found.
func (h *bookmarksAPIHandler) bookmarkCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.log.Error("bookmark not found", logger.String("id", raw))
			writeText(w, http.StatusNotFound, msgNotFound)
			return
		}

		b, err := h.bookmarks.GetByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			h.log.Error("bookmark not found", logger.Int64("id", id))
			writeText(w, http.StatusNotFound, msgNotFound)
			return
		}
		if err != nil {
			serverError(w, r, h.log, err)
			return
		}

		ctx := context.WithValue(r.Context(), bookmarkCtxKey{}, b)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bookmarkFromContext(ctx context.Context) *store.Bookmark {
	b, _ := ctx.Value(bookmarkCtxKey{}).(*store.Bookmark)
	return b
}

// Get returns a single bookmark.
// GET /bookmarks/{id}
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serializeBookmark(bookmarkFromContext(r.Context())))
}

// Delete removes a bookmark.
// DELETE /bookmarks/{id}
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b := bookmarkFromContext(r.Context())

	n, err := h.bookmarks.DeleteByID(r.Context(), b.ID)
	if err != nil {
		serverError(w, r, h.log, err)
		return
	}
	// Removed by a concurrent request between the lookup and the delete.
	if n == 0 {
		writeText(w, http.StatusNotFound, msgNotFound)
		return
	}
	metrics.BookmarksDeletedTotal.Inc()
	metrics.BookmarksTotal.Dec()
	h.log.Info("bookmark deleted", logger.Int64("id", b.ID))

	w.WriteHeader(http.StatusNoContent)
}

// Update applies a partial update to a bookmark. Any subset of title, url,
// description and rating is accepted, but at least one must be present.
// PATCH /bookmarks/{id}
func (h *bookmarksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	b := bookmarkFromContext(r.Context())

	var req UpdateBookmarkRequest
	// A body with no content at all is the same as an empty object.
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Error("invalid bookmark body", logger.Error(err))
		writeText(w, http.StatusBadRequest, msgInvalidData)
		return
	}

	var patch store.BookmarkPatch
	patch.Title = req.Title
	patch.URL = req.URL
	patch.Description = req.Description
	if req.Rating != nil {
		rating, err := store.ParseRating(req.Rating)
		if err != nil {
			h.log.Error("invalid bookmark rating", logger.Error(err))
			writeText(w, http.StatusBadRequest, msgInvalidRating)
			return
		}
		patch.Rating = &rating
	}

	if patch.Empty() {
		writeText(w, http.StatusBadRequest, msgEmptyPatch)
		return
	}
	if patch.Title != nil && *patch.Title == "" {
		writeText(w, http.StatusBadRequest, msgInvalidData)
		return
	}
	if patch.URL != nil {
		if err := store.ValidateURL(*patch.URL); err != nil {
			h.log.Error("invalid bookmark url", logger.String("url", *patch.URL))
			writeText(w, http.StatusBadRequest, msgInvalidURL)
			return
		}
	}

	if _, err := h.bookmarks.Update(r.Context(), b.ID, patch); err != nil {
		serverError(w, r, h.log, err)
		return
	}
	h.log.Info("bookmark updated", logger.Int64("id", b.ID))

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON request body keeping numbers as json.Number so
// ratings like 2.5 are rejected rather than truncated.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
