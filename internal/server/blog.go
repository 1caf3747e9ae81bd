package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/store"
)

// DefaultListLimit is used when /api/blog has no limit parameter.
const DefaultListLimit = 10

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	posts, err := s.store.ListPosts(r.Context(), limit)
	if err != nil {
		zap.L().Error("server: list posts", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to fetch blog posts",
			"posts":   []model.Post{},
			"count":   0,
		})
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"posts":   posts,
		"count":   len(posts),
	})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := s.store.GetPost(r.Context(), slug)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Post not found"})
		return
	}
	if err != nil {
		zap.L().Error("server: get post", zap.String("slug", slug), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Failed to load blog post"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "post": post})
}

func (s *Server) handleBlogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		zap.L().Error("server: blog stats", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Failed to load blog stats"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

// handleDailyBlog runs one generation. An empty cron secret rejects every caller.
func (s *Server) handleDailyBlog(w http.ResponseWriter, r *http.Request) {
	if !s.authorizedCron(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	if s.gen == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success":   false,
			"error":     "blog generation is not configured",
			"timestamp": s.now().UTC().Format(time.RFC3339),
		})
		return
	}

	zap.L().Info("server: daily blog generation started")
	post, err := s.gen.Generate(r.Context())
	if err != nil {
		zap.L().Error("server: daily blog generation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":   false,
			"error":     err.Error(),
			"timestamp": s.now().UTC().Format(time.RFC3339),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Blog post generated successfully",
		"data": map[string]any{
			"newPost": map[string]string{
				"title":       post.Title,
				"slug":        post.Slug,
				"publishDate": post.PublishDate,
			},
		},
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) authorizedCron(r *http.Request) bool {
	if s.opts.CronSecret == "" {
		return false
	}
	want := "Bearer " + s.opts.CronSecret
	got := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
