// Package archive is a SQLite-backed feed store used for offline and seeded
// deployments.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/inkwell/internal/feed"
	"github.com/louisbranch/inkwell/internal/feed/archive/migrations"
	"github.com/louisbranch/inkwell/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// Entry is an archived post plus its publication time.
type Entry struct {
	feed.Post `yaml:",inline"`
	Created   time.Time `yaml:"created"`
}

// Store persists archived posts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the archive at path and applies embedded migrations. The special
// path ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if dsn == ":memory:" {
		// Each connection to :memory: is a separate database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutPosts upserts entries keyed by author and permlink.
func (s *Store) PutPosts(ctx context.Context, entries []Entry) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	for i, entry := range entries {
		if strings.TrimSpace(entry.Author) == "" || strings.TrimSpace(entry.Permlink) == "" {
			return fmt.Errorf("entry %d: author and permlink are required", i)
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put posts: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (id, author, permlink, category, title, children, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (author, permlink) DO UPDATE SET
    id = excluded.id,
    category = excluded.category,
    title = excluded.title,
    children = excluded.children,
    created_at = excluded.created_at`)
	if err != nil {
		return fmt.Errorf("prepare put posts: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, entry := range entries {
		created := entry.Created.UTC()
		if entry.Created.IsZero() {
			created = now
		}
		if _, err := stmt.ExecContext(ctx,
			entry.ID,
			strings.TrimSpace(entry.Author),
			strings.TrimSpace(entry.Permlink),
			strings.TrimSpace(entry.Category),
			entry.Title,
			max(entry.Children, 0),
			created.UnixMilli(),
		); err != nil {
			return fmt.Errorf("put post %s/%s: %w", entry.Author, entry.Permlink, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put posts: %w", err)
	}
	return nil
}

// FetchUserFeed implements feed.Fetcher. Blog, feed, and created sorts return
// the newest posts first; trending orders by comment count.
func (s *Store) FetchUserFeed(ctx context.Context, q feed.Query) (feed.Result, error) {
	if err := ctx.Err(); err != nil {
		return feed.Result{}, err
	}
	if s == nil || s.sqlDB == nil {
		return feed.Result{}, fmt.Errorf("%w: archive is not configured", feed.ErrUnavailable)
	}
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return feed.Result{}, err
	}

	order := "created_at DESC, id DESC"
	if q.SortBy == feed.SortTrending {
		order = "children DESC, created_at DESC"
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, author, permlink, category, title, children
		   FROM posts
		  WHERE author = ?
		  ORDER BY `+order+`
		  LIMIT ?`,
		q.Username, q.Limit,
	)
	if err != nil {
		return feed.Result{}, fmt.Errorf("%w: query posts: %w", feed.ErrUnavailable, err)
	}
	defer rows.Close()

	posts := []feed.Post{}
	for rows.Next() {
		var p feed.Post
		if err := rows.Scan(&p.ID, &p.Author, &p.Permlink, &p.Category, &p.Title, &p.Children); err != nil {
			return feed.Result{}, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return feed.Result{}, fmt.Errorf("iterate posts: %w", err)
	}
	return feed.Result{Posts: posts}, nil
}
