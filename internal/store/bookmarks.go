package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const bookmarksTable = "bookmarks"

var bookmarkColumns = []string{"id", "title", "url", "description", "rating"}

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	URL         string `db:"url"`
	Description string `db:"description"`
	Rating      int    `db:"rating"`
}

// BookmarkFields holds the caller-supplied columns of a new bookmark.
type BookmarkFields struct {
	Title       string
	URL         string
	Description string
	Rating      int
}

// BookmarkPatch is a partial update. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *int
}

// Empty reports whether the patch carries no fields at all.
func (p BookmarkPatch) Empty() bool {
	return p.Title == nil && p.URL == nil && p.Description == nil && p.Rating == nil
}

// BookmarkStore is the sqlx-backed implementation of BookmarkRepository.
// Every method issues one statement, except Insert which re-reads the new
// row; there are no transactions.
type BookmarkStore struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(placeholderFormat(db.DriverName())),
	}
}

func placeholderFormat(driver string) sq.PlaceholderFormat {
	if driver == "postgres" {
		return sq.Dollar
	}
	return sq.Question
}

// ListAll returns every bookmark ordered by id. The result is never nil.
func (s *BookmarkStore) ListAll(ctx context.Context) ([]*Bookmark, error) {
	query, args, err := s.sb.Select(bookmarkColumns...).From(bookmarksTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build list query")
	}

	bookmarks := make([]*Bookmark, 0)
	if err := s.db.SelectContext(ctx, &bookmarks, query, args...); err != nil {
		return nil, errors.Wrap(err, "list bookmarks")
	}
	return bookmarks, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id int64) (*Bookmark, error) {
	query, args, err := s.sb.Select(bookmarkColumns...).From(bookmarksTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build get query")
	}

	var b Bookmark
	err = s.db.GetContext(ctx, &b, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get bookmark %d", id)
	}
	return &b, nil
}

// Insert persists a new bookmark and returns the stored row re-read by its
// server-assigned id.
func (s *BookmarkStore) Insert(ctx context.Context, f BookmarkFields) (*Bookmark, error) {
	ins := s.sb.Insert(bookmarksTable).
		Columns("title", "url", "description", "rating").
		Values(f.Title, f.URL, f.Description, f.Rating)

	var id int64
	if s.db.DriverName() == "mysql" {
		query, args, err := ins.ToSql()
		if err != nil {
			return nil, errors.Wrap(err, "build insert query")
		}
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, errors.Wrap(err, "insert bookmark")
		}
		if id, err = res.LastInsertId(); err != nil {
			return nil, errors.Wrap(err, "read inserted id")
		}
	} else {
		query, args, err := ins.Suffix("RETURNING id").ToSql()
		if err != nil {
			return nil, errors.Wrap(err, "build insert query")
		}
		if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return nil, errors.Wrap(err, "insert bookmark")
		}
	}

	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "read inserted bookmark %d", id)
	}
	return b, nil
}

// DeleteByID removes the bookmark with the given id and reports how many
// rows were deleted. Zero means the bookmark did not exist.
func (s *BookmarkStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	query, args, err := s.sb.Delete(bookmarksTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build delete query")
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "delete bookmark %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}
	return n, nil
}

// Update sets only the fields present in p and reports the number of rows
// affected. An empty patch is a no-op.
func (s *BookmarkStore) Update(ctx context.Context, id int64, p BookmarkPatch) (int64, error) {
	if p.Empty() {
		return 0, nil
	}

	upd := s.sb.Update(bookmarksTable).Where(sq.Eq{"id": id})
	if p.Title != nil {
		upd = upd.Set("title", *p.Title)
	}
	if p.URL != nil {
		upd = upd.Set("url", *p.URL)
	}
	if p.Description != nil {
		upd = upd.Set("description", *p.Description)
	}
	if p.Rating != nil {
		upd = upd.Set("rating", *p.Rating)
	}

	query, args, err := upd.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build update query")
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "update bookmark %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}
	return n, nil
}

// Count returns the number of stored bookmarks.
func (s *BookmarkStore) Count(ctx context.Context) (int64, error) {
	query, args, err := s.sb.Select("COUNT(*)").From(bookmarksTable).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build count query")
	}

	var n int64
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, errors.Wrap(err, "count bookmarks")
	}
	return n, nil
}
