package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-intake/internal/blog"
	"github.com/sells-group/lead-intake/internal/config"
	"github.com/sells-group/lead-intake/internal/intake"
	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/store"
	"github.com/sells-group/lead-intake/pkg/anthropic"
	"github.com/sells-group/lead-intake/pkg/gemini"
)

// initStore opens the configured blog store wrapped in a Fallback. A store
// that cannot be reached is logged and replaced by the static fallback posts.
func initStore(ctx context.Context, c config.StoreConfig) *store.Fallback {
	st, err := openStore(ctx, c)
	if err != nil {
		zap.L().Warn("blog store unavailable, serving fallback posts",
			zap.String("driver", c.Driver), zap.Error(err))
		return store.NewFallback(nil)
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("blog store migrate failed", zap.String("driver", c.Driver), zap.Error(err))
	}
	return store.NewFallback(st)
}

func openStore(ctx context.Context, c config.StoreConfig) (store.BlogStore, error) {
	switch c.Driver {
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		return store.NewRedis(ctx, store.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	case "sqlite":
		return store.NewSQLite(c.SQLitePath)
	case "postgres":
		return store.NewPostgres(ctx, c.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", c.Driver)
	}
}

// initTextGenerator builds the configured model client.
func initTextGenerator(ctx context.Context, c *config.Config) (blog.TextGenerator, error) {
	switch c.Blog.Provider {
	case "anthropic":
		if c.Anthropic.Key == "" {
			return nil, eris.New("anthropic key is required (INTAKE_ANTHROPIC_KEY)")
		}
		return anthropic.NewGenerator(anthropic.NewClient(c.Anthropic.Key), c.Anthropic.Model, int64(c.Blog.MaxTokens)), nil
	case "gemini":
		return gemini.New(ctx, c.Gemini.Key, c.Gemini.Model, int32(c.Blog.MaxTokens))
	default:
		return nil, eris.Errorf("unsupported blog provider: %s", c.Blog.Provider)
	}
}

func initBlogGenerator(ctx context.Context, c *config.Config, st store.BlogStore) (*blog.Generator, error) {
	llm, err := initTextGenerator(ctx, c)
	if err != nil {
		return nil, err
	}
	return blog.NewGenerator(llm, st,
		blog.WithSiteURL(c.Blog.SiteURL),
		blog.WithAuthor(c.Blog.Author),
	), nil
}

// endpointsFrom resolves the configured webhook URLs against the base URL.
func endpointsFrom(c config.IntakeConfig) intake.Endpoints {
	return intake.Endpoints{
		Step1Internal: resolveURL(c.BaseURL, c.Step1InternalURL),
		Step1External: resolveURL(c.BaseURL, c.Step1ExternalURL),
		Step2Internal: resolveURL(c.BaseURL, c.Step2InternalURL),
		Step2External: resolveURL(c.BaseURL, c.Step2ExternalURL),
	}
}

func resolveURL(base, u string) string {
	if !strings.HasPrefix(u, "/") || base == "" {
		return u
	}
	return strings.TrimRight(base, "/") + u
}

func initDispatcher(c config.IntakeConfig) *intake.HTTPDispatcher {
	client := &http.Client{}
	if c.HTTPTimeoutSecs > 0 {
		client.Timeout = time.Duration(c.HTTPTimeoutSecs) * time.Second
	}
	return intake.NewHTTPDispatcher(endpointsFrom(c),
		intake.WithHTTPClient(client),
		intake.WithUserAgent(c.UserAgent),
	)
}

func initSchema(c config.IntakeConfig) (*model.Schema, error) {
	if c.SchemaPath == "" {
		return model.DefaultSchema(), nil
	}
	return model.LoadSchema(c.SchemaPath)
}
