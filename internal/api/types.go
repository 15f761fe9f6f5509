package api

import (
	"github.com/joestump/bookmarks/internal/sanitize"
	"github.com/joestump/bookmarks/internal/store"
)

// CreateBookmarkRequest is the request body for POST /bookmarks.
// Rating is decoded loosely so both 3 and "3" are accepted.
type CreateBookmarkRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Rating      any     `json:"rating"`
}

// UpdateBookmarkRequest is the request body for PATCH /bookmarks/{id}.
// Every field is optional; absent or null fields are left untouched.
type UpdateBookmarkRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Rating      any     `json:"rating"`
}

// BookmarkResponse is the JSON representation of a single bookmark.
type BookmarkResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// serializeBookmark shapes a stored bookmark for a client. Title and
// description are sanitized on every read so stored markup never executes.
func serializeBookmark(b *store.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		Title:       sanitize.HTML(b.Title),
		URL:         b.URL,
		Description: sanitize.HTML(b.Description),
		Rating:      b.Rating,
	}
}
