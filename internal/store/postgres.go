package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-intake/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore. pgxmock pools
// satisfy it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements BlogStore using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS blog_posts (
	slug     TEXT PRIMARY KEY,
	title    TEXT NOT NULL,
	data     JSONB NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_blog_posts_saved_at ON blog_posts(saved_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM blog_posts WHERE slug = $1`, slug).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get post %s", slug)
	}
	return decodePost(data)
}

func (s *PostgresStore) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM blog_posts ORDER BY saved_at DESC LIMIT $1`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list posts")
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan post")
		}
		p, err := decodePost(data)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, eris.Wrap(rows.Err(), "postgres: iterate posts")
}

func (s *PostgresStore) SavePost(ctx context.Context, post model.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal post")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO blog_posts (slug, title, data, saved_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title, data = EXCLUDED.data, saved_at = now()`,
		post.Slug, post.Title, data,
	)
	return eris.Wrapf(err, "postgres: save post %s", post.Slug)
}

func (s *PostgresStore) Stats(ctx context.Context) (*model.BlogStats, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&total); err != nil {
		return nil, eris.Wrap(err, "postgres: count posts")
	}
	stats := &model.BlogStats{TotalPosts: total, Source: "postgres"}
	if total == 0 {
		return stats, nil
	}
	latest, err := s.ListPosts(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(latest) > 0 {
		stats.LatestPost = &latest[0]
	}
	return stats, nil
}
