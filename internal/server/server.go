// Package server exposes the webhook receivers and blog API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins []string
	// RateLimit is webhook requests per second across all clients; 0 disables.
	RateLimit  float64
	RateBurst  int
	CronSecret string
	SiteURL    string
}

// PostGenerator writes and saves one blog post.
type PostGenerator interface {
	Generate(ctx context.Context) (*model.Post, error)
}

// Server routes HTTP requests to the intake receivers and blog handlers.
type Server struct {
	opts     Options
	store    store.BlogStore
	gen      PostGenerator
	validate *validator.Validate
	limiter  *rate.Limiter
	now      func() time.Time
	router   chi.Router
}

// New builds a Server. gen may be nil, in which case the cron route answers 503.
func New(opts Options, st store.BlogStore, gen PostGenerator) *Server {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.SiteURL == "" {
		opts.SiteURL = "https://www.accidentlawyerfontana.com"
	}
	opts.SiteURL = strings.TrimRight(opts.SiteURL, "/")

	s := &Server{
		opts:     opts,
		store:    st,
		gen:      gen,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/sitemap.xml", s.handleSitemap)

	r.Route("/api", func(r chi.Router) {
		r.Route("/webhooks", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.opts.CORSOrigins,
				AllowedMethods: []string{http.MethodPost, http.MethodOptions},
				AllowedHeaders: []string{"Content-Type"},
				MaxAge:         300,
			}))
			r.Use(s.rateLimit)
			r.Post("/step1", s.handleStep1)
			r.Post("/step2", s.handleStep2)
		})

		r.Get("/blog", s.handleListPosts)
		r.Get("/blog/stats", s.handleBlogStats)
		r.Get("/blog/{slug}", s.handleGetPost)

		r.Get("/cron/daily-blog", s.handleDailyBlog)
		r.Post("/cron/daily-blog", s.handleDailyBlog)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && r.Method != http.MethodOptions && !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"success": false,
				"error":   "rate limit exceeded",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

// newID returns prefix_<unix ms>_<9 random hex chars>.
func newID(prefix string, now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return prefix + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + token
}
