package seed

import (
	"context"

	"github.com/pkg/errors"

	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/store"
)

// ErrEmptyTitle is returned for a seed entry without a title.
var ErrEmptyTitle = errors.New("title is required")

// Fields validates e with the same rules the API applies on create.
func (e Entry) Fields() (store.BookmarkFields, error) {
	if e.Title == "" {
		return store.BookmarkFields{}, ErrEmptyTitle
	}
	rating, err := store.ParseRating(e.Rating)
	if err != nil {
		return store.BookmarkFields{}, err
	}
	if err := store.ValidateURL(e.URL); err != nil {
		return store.BookmarkFields{}, err
	}
	return store.BookmarkFields{
		Title:       e.Title,
		URL:         e.URL,
		Description: e.Description,
		Rating:      rating,
	}, nil
}

// Seeder inserts seed entries through a bookmark repository.
type Seeder struct {
	repo   store.BookmarkRepository
	logger logger.Logger
}

func NewSeeder(repo store.BookmarkRepository, log logger.Logger) *Seeder {
	return &Seeder{repo: repo, logger: log}
}

// Seed validates every entry first and only then inserts them in file
// order, so an invalid file leaves storage untouched. It returns the
// inserted bookmarks.
func (s *Seeder) Seed(ctx context.Context, f *File) ([]*store.Bookmark, error) {
	fields := make([]store.BookmarkFields, 0, len(f.Bookmarks))
	for i, e := range f.Bookmarks {
		bf, err := e.Fields()
		if err != nil {
			return nil, errors.Wrapf(err, "bookmark %d (%q)", i+1, e.Title)
		}
		fields = append(fields, bf)
	}

	out := make([]*store.Bookmark, 0, len(fields))
	for _, bf := range fields {
		b, err := s.repo.Insert(ctx, bf)
		if err != nil {
			return out, errors.Wrapf(err, "insert %q", bf.Title)
		}
		s.logger.Debug("seeded bookmark", logger.Int64("id", b.ID), logger.String("title", b.Title))
		out = append(out, b)
	}
	s.logger.Info("seed complete", logger.Int("count", len(out)))
	return out, nil
}
