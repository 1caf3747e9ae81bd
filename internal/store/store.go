package store

import (
	"context"
	"errors"

	"github.com/sells-group/lead-intake/internal/model"
)

// MaxListedPosts caps how many post slugs a store keeps in its listing.
const MaxListedPosts = 100

// ErrNotFound is returned when a post slug has no stored post.
var ErrNotFound = errors.New("store: post not found")

// BlogStore defines the persistence interface for generated blog posts.
type BlogStore interface {
	GetPost(ctx context.Context, slug string) (*model.Post, error)
	// ListPosts returns up to limit posts, newest first.
	ListPosts(ctx context.Context, limit int) ([]model.Post, error)
	// SavePost upserts by slug and moves the post to the head of the listing.
	SavePost(ctx context.Context, post model.Post) error
	Stats(ctx context.Context) (*model.BlogStats, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxListedPosts {
		return MaxListedPosts
	}
	return limit
}
