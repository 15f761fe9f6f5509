package store

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a requested bookmark does not exist.
	ErrNotFound = errors.New("not found")
)

// BookmarkRepository exposes all bookmark data operations.
// Handlers never query the DB directly; all access goes through this interface.
type BookmarkRepository interface {
	ListAll(ctx context.Context) ([]*Bookmark, error)
	GetByID(ctx context.Context, id int64) (*Bookmark, error)
	Insert(ctx context.Context, f BookmarkFields) (*Bookmark, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, p BookmarkPatch) (int64, error)
	Count(ctx context.Context) (int64, error)
}

var _ BookmarkRepository = (*BookmarkStore)(nil)
