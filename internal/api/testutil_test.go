package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joestump/bookmarks/internal/api"
	"github.com/joestump/bookmarks/internal/auth"
	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/store"
	"github.com/joestump/bookmarks/internal/testutil"
)

const testToken = "test-api-token"

// testEnv holds the router and the store behind it.
type testEnv struct {
	Router    http.Handler
	Bookmarks *store.BookmarkStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full router with a real store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	bs := store.NewBookmarkStore(db)

	return &testEnv{
		Router:    newRouter(bs),
		Bookmarks: bs,
	}
}

func newRouter(repo store.BookmarkRepository) http.Handler {
	return api.NewRouter(api.Deps{
		BearerAuth: auth.NewBearerTokenMiddleware(testToken),
		Bookmarks:  repo,
		Logger:     logger.NewNop(),
	})
}

// do sends an authenticated request to the router.
func (env *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	req := newRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// doAnonymous sends a request without an Authorization header.
func (env *testEnv) doAnonymous(method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, newRequest(method, target, body))
	return rec
}

func newRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// fixtureBookmarks mirrors the sample data shipped in testdata/bookmarks.yaml.
func fixtureBookmarks() []store.BookmarkFields {
	const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. In mollis mauris at faucibus ullamcorper. Curabitur lorem magna, commodo ut ante convallis, gravida sodales massa."
	return []store.BookmarkFields{
		{Title: "google", URL: "https://www.google.com", Description: lorem, Rating: 5},
		{Title: "Thinkful", URL: "https://www.thinkful.com", Description: lorem, Rating: 5},
		{Title: "github", URL: "https://www.github.com", Description: lorem, Rating: 4},
	}
}

func maliciousBookmark() store.BookmarkFields {
	return store.BookmarkFields{
		Title:       `Malicious Attack <script>alert("I am attacking");</script>`,
		URL:         "https://www.example.com",
		Description: `Another Attack <img src="nope.jpg" onerror="alert(document.cookie);">`,
		Rating:      1,
	}
}

// seedBookmarks inserts fields in order and returns the stored records.
func seedBookmarks(t *testing.T, env *testEnv, fields ...store.BookmarkFields) []*store.Bookmark {
	t.Helper()
	out := make([]*store.Bookmark, 0, len(fields))
	for _, f := range fields {
		b, err := env.Bookmarks.Insert(context.Background(), f)
		if err != nil {
			t.Fatalf("seed bookmark: %v", err)
		}
		out = append(out, b)
	}
	return out
}

func countBookmarks(t *testing.T, env *testEnv) int64 {
	t.Helper()
	n, err := env.Bookmarks.Count(context.Background())
	if err != nil {
		t.Fatalf("count bookmarks: %v", err)
	}
	return n
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
