package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/model"
)

// FallbackPosts returns the static posts served when no backing store is
// reachable or the backing store is empty.
func FallbackPosts() []model.Post {
	return []model.Post{
		{
			ID:          1,
			Title:       "Navigating California's Comparative Negligence Laws After a Fontana Car Accident",
			Slug:        "comparative-negligence-fontana-car-accident",
			Excerpt:     "Were you injured in a car accident in Fontana or San Bernardino County? Understanding California's comparative negligence laws is crucial to protecting your rights.",
			PublishDate: "2025-09-16T06:03:45.119Z",
			URL:         "/blog/comparative-negligence-fontana-car-accident",
			Keywords:    []string{"fontana car accident lawyer", "car accident attorney fontana", "personal injury lawyer san bernardino county"},
			Status:      "published",
		},
		{
			ID:          2,
			Title:       "Fontana Car Accident? What to Do Immediately After the Crash",
			Slug:        "fontana-car-accident-immediate-steps",
			Excerpt:     "Were you in a car accident in Fontana? Knowing what to do immediately after a crash can protect your rights and your health. Get expert legal advice.",
			PublishDate: "2025-09-16T06:07:19.873Z",
			URL:         "/blog/fontana-car-accident-immediate-steps",
			Keywords:    []string{"fontana car accident lawyer", "car accident attorney fontana", "car accident fontana"},
			Status:      "published",
		},
	}
}

// Fallback wraps a BlogStore and answers reads from FallbackPosts whenever
// the upstream store is nil, failing, or empty. Writes never fail.
type Fallback struct {
	upstream BlogStore
}

// NewFallback wraps upstream, which may be nil.
func NewFallback(upstream BlogStore) *Fallback {
	return &Fallback{upstream: upstream}
}

// Upstream returns the wrapped store or nil.
func (f *Fallback) Upstream() BlogStore { return f.upstream }

func (f *Fallback) Migrate(ctx context.Context) error {
	if f.upstream == nil {
		return nil
	}
	return f.upstream.Migrate(ctx)
}

func (f *Fallback) Close() error {
	if f.upstream == nil {
		return nil
	}
	return f.upstream.Close()
}

func (f *Fallback) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	if f.upstream != nil {
		p, err := f.upstream.GetPost(ctx, slug)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrNotFound) {
			zap.L().Error("store: read post failed, using fallback",
				zap.String("slug", slug), zap.Error(err))
		}
	}
	for _, p := range FallbackPosts() {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (f *Fallback) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	if f.upstream != nil {
		posts, err := f.upstream.ListPosts(ctx, limit)
		if err != nil {
			zap.L().Error("store: list posts failed, using fallback", zap.Error(err))
		} else if len(posts) > 0 {
			return posts, nil
		}
	}
	posts := FallbackPosts()
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

// SavePost logs and swallows upstream failures so generation still returns
// the post to its caller.
func (f *Fallback) SavePost(ctx context.Context, post model.Post) error {
	if f.upstream == nil {
		zap.L().Info("store: no backing store, post kept in response only",
			zap.String("slug", post.Slug))
		return nil
	}
	if err := f.upstream.SavePost(ctx, post); err != nil {
		zap.L().Error("store: save post failed",
			zap.String("slug", post.Slug), zap.Error(err))
		return nil
	}
	zap.L().Info("store: post saved", zap.String("slug", post.Slug), zap.String("title", post.Title))
	return nil
}

func (f *Fallback) Stats(ctx context.Context) (*model.BlogStats, error) {
	if f.upstream == nil {
		return &model.BlogStats{TotalPosts: len(FallbackPosts()), Source: "fallback"}, nil
	}
	stats, err := f.upstream.Stats(ctx)
	if err != nil {
		zap.L().Error("store: stats failed", zap.Error(err))
		return &model.BlogStats{TotalPosts: 0, Source: "error"}, nil
	}
	return stats, nil
}
