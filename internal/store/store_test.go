package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-intake/internal/model"
)

func testPost(slug string) model.Post {
	return model.Post{
		Title:       "Post " + slug,
		Slug:        slug,
		Excerpt:     "excerpt for " + slug,
		Content:     "<p>body</p>",
		Keywords:    []string{"fontana car accident lawyer"},
		PublishDate: "2025-09-16T06:03:45.119Z",
		URL:         "/blog/" + slug,
		Status:      "published",
	}
}

// runBlogStoreContract exercises behavior every BlogStore must share.
func runBlogStoreContract(t *testing.T, s BlogStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalPosts)
	assert.Nil(t, stats.LatestPost)

	require.NoError(t, s.SavePost(ctx, testPost("first")))
	require.NoError(t, s.SavePost(ctx, testPost("second")))

	got, err := s.GetPost(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "Post first", got.Title)
	assert.Equal(t, []string{"fontana car accident lawyer"}, got.Keywords)

	posts, err := s.ListPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Slug)
	assert.Equal(t, "first", posts[1].Slug)

	posts, err = s.ListPosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "second", posts[0].Slug)

	// Re-saving moves the slug to the head without duplicating it.
	updated := testPost("first")
	updated.Title = "Updated"
	require.NoError(t, s.SavePost(ctx, updated))

	posts, err = s.ListPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "first", posts[0].Slug)
	assert.Equal(t, "Updated", posts[0].Title)

	stats, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalPosts)
	require.NotNil(t, stats.LatestPost)
	assert.Equal(t, "first", stats.LatestPost.Slug)
}

func runBlogStoreCap(t *testing.T, s BlogStore) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < MaxListedPosts+5; i++ {
		require.NoError(t, s.SavePost(ctx, testPost(fmt.Sprintf("post-%03d", i))))
	}
	posts, err := s.ListPosts(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, posts, MaxListedPosts)
	assert.Equal(t, fmt.Sprintf("post-%03d", MaxListedPosts+4), posts[0].Slug)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, MaxListedPosts, clampLimit(0))
	assert.Equal(t, MaxListedPosts, clampLimit(-3))
	assert.Equal(t, MaxListedPosts, clampLimit(MaxListedPosts+1))
	assert.Equal(t, 7, clampLimit(7))
}

func TestMemoryStore_Contract(t *testing.T) {
	runBlogStoreContract(t, NewMemory())
}

func TestMemoryStore_Cap(t *testing.T) {
	runBlogStoreCap(t, NewMemory())
}

func TestMemoryStore_StatsSource(t *testing.T) {
	stats, err := NewMemory().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "memory", stats.Source)
}
