package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/lead-intake/internal/model"
)

// SQLiteStore implements BlogStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS blog_posts (
	slug       TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	data       TEXT NOT NULL,
	saved_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_blog_posts_saved_at ON blog_posts(saved_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetPost(ctx context.Context, slug string) (*model.Post, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM blog_posts WHERE slug = ?`, slug).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get post %s", slug)
	}
	return decodePost([]byte(data))
}

func (s *SQLiteStore) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM blog_posts ORDER BY saved_at DESC, rowid DESC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list posts")
	}
	defer rows.Close() //nolint:errcheck

	var posts []model.Post
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan post")
		}
		p, err := decodePost([]byte(data))
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, eris.Wrap(rows.Err(), "sqlite: iterate posts")
}

func (s *SQLiteStore) SavePost(ctx context.Context, post model.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal post")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO blog_posts (slug, title, data, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET title = excluded.title, data = excluded.data, saved_at = excluded.saved_at`,
		post.Slug, post.Title, string(data), time.Now().UTC().UnixNano(),
	)
	return eris.Wrapf(err, "sqlite: save post %s", post.Slug)
}

func (s *SQLiteStore) Stats(ctx context.Context) (*model.BlogStats, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&total); err != nil {
		return nil, eris.Wrap(err, "sqlite: count posts")
	}
	stats := &model.BlogStats{TotalPosts: total, Source: "sqlite"}
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

func decodePost(data []byte) (*model.Post, error) {
	var p model.Post
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrap(err, "store: decode post")
	}
	return &p, nil
}
