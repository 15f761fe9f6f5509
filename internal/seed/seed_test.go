package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/seed"
	"github.com/joestump/bookmarks/internal/store"
	"github.com/joestump/bookmarks/internal/testutil"
)

func TestLoader_Fixtures(t *testing.T) {
	f, err := seed.NewLoader("testdata/bookmarks.yaml").Load()
	require.NoError(t, err)
	require.Len(t, f.Bookmarks, 3)
	assert.Equal(t, "google", f.Bookmarks[0].Title)
	assert.Equal(t, "https://www.thinkful.com", f.Bookmarks[1].URL)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := seed.NewLoader("testdata/nope.yaml").Load()
	assert.Error(t, err)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := seed.Parse([]byte("bookmarks:\n  - title: x\n    link: https://x.com\n"))
	assert.Error(t, err)
}

func TestSeeder_Seed(t *testing.T) {
	bs := store.NewBookmarkStore(testutil.NewTestDB(t))
	f, err := seed.NewLoader("testdata/bookmarks.yaml").Load()
	require.NoError(t, err)

	got, err := seed.NewSeeder(bs, logger.NewNop()).Seed(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, got, 3)

	all, err := bs.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "github", all[2].Title)
	assert.Equal(t, 4, all[2].Rating)
}

func TestSeeder_InvalidEntryInsertsNothing(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"missing title", "bookmarks:\n  - url: https://a.com\n    rating: 1\n", seed.ErrEmptyTitle},
		{"bad rating", "bookmarks:\n  - title: a\n    url: https://a.com\n    rating: 9\n", store.ErrInvalidRating},
		{"bad url", "bookmarks:\n  - title: a\n    url: a.com\n    rating: 1\n", store.ErrInvalidURL},
	}
	bs := store.NewBookmarkStore(testutil.NewTestDB(t))
	s := seed.NewSeeder(bs, logger.NewNop())

	for _, tc := range cases {
		f, err := seed.Parse([]byte("bookmarks:\n  - title: ok\n    url: https://ok.com\n    rating: 3\n" + tc.yaml[len("bookmarks:\n"):]))
		require.NoError(t, err, tc.name)

		_, err = s.Seed(context.Background(), f)
		assert.ErrorIs(t, err, tc.want, tc.name)
	}

	n, err := bs.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEntry_QuotedRating(t *testing.T) {
	f, err := seed.Parse([]byte("bookmarks:\n  - title: a\n    url: https://a.com\n    rating: \"2\"\n"))
	require.NoError(t, err)

	bf, err := f.Bookmarks[0].Fields()
	require.NoError(t, err)
	assert.Equal(t, 2, bf.Rating)
	assert.Equal(t, "", bf.Description)
}
