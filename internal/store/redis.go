package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-intake/internal/model"
)

const (
	redisKeyPrefix = "blog:"
	redisListKey   = redisKeyPrefix + "posts"
)

func redisPostKey(slug string) string {
	return redisKeyPrefix + "post:" + slug
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// RedisStore implements BlogStore on Redis: each post is a JSON string under
// blog:post:<slug> and blog:posts lists slugs newest first.
type RedisStore struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, eris.Wrap(err, "redis: ping")
	}
	return &RedisStore{client: client}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Migrate(context.Context) error { return nil }

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	data, err := s.client.Get(ctx, redisPostKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "redis: get post %s", slug)
	}
	var p model.Post
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrapf(err, "redis: decode post %s", slug)
	}
	return &p, nil
}

func (s *RedisStore) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	limit = clampLimit(limit)
	slugs, err := s.client.LRange(ctx, redisListKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, eris.Wrap(err, "redis: list slugs")
	}

	posts := make([]model.Post, 0, len(slugs))
	for _, slug := range slugs {
		p, err := s.GetPost(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, nil
}

func (s *RedisStore) SavePost(ctx context.Context, post model.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return eris.Wrap(err, "redis: marshal post")
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisPostKey(post.Slug), data, 0)
		pipe.LRem(ctx, redisListKey, 0, post.Slug)
		pipe.LPush(ctx, redisListKey, post.Slug)
		pipe.LTrim(ctx, redisListKey, 0, MaxListedPosts-1)
		return nil
	})
	return eris.Wrapf(err, "redis: save post %s", post.Slug)
}

func (s *RedisStore) Stats(ctx context.Context) (*model.BlogStats, error) {
	total, err := s.client.LLen(ctx, redisListKey).Result()
	if err != nil {
		return nil, eris.Wrap(err, "redis: count posts")
	}

	stats := &model.BlogStats{TotalPosts: int(total), Source: "redis"}
	if total == 0 {
		return stats, nil
	}
	slug, err := s.client.LIndex(ctx, redisListKey, 0).Result()
	if err != nil {
		return nil, eris.Wrap(err, "redis: latest slug")
	}
	latest, err := s.GetPost(ctx, slug)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	stats.LatestPost = latest
	return stats, nil
}
