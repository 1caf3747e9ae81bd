package store

import (
	"context"
	"sync"

	"github.com/sells-group/lead-intake/internal/model"
)

// MemoryStore keeps posts in process memory. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]model.Post
	order []string // newest first
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{posts: make(map[string]model.Post)}
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetPost(_ context.Context, slug string) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) ListPosts(_ context.Context, limit int) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	limit = clampLimit(limit)
	var out []model.Post
	for _, slug := range s.order {
		if len(out) == limit {
			break
		}
		out = append(out, s.posts[slug])
	}
	return out, nil
}

func (s *MemoryStore) SavePost(_ context.Context, post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.Slug] = post

	order := []string{post.Slug}
	for _, slug := range s.order {
		if slug != post.Slug {
			order = append(order, slug)
		}
	}
	if len(order) > MaxListedPosts {
		for _, slug := range order[MaxListedPosts:] {
			delete(s.posts, slug)
		}
		order = order[:MaxListedPosts]
	}
	s.order = order
	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (*model.BlogStats, error) {
	s.mu.RLock()
	total := len(s.order)
	var latest *model.Post
	if total > 0 {
		p := s.posts[s.order[0]]
		latest = &p
	}
	s.mu.RUnlock()
	return &model.BlogStats{TotalPosts: total, LatestPost: latest, Source: "memory"}, nil
}
