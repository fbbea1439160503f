package folio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/folio-blog/folio/auth"
	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/views"
)

// ErrNotFound is returned when a requested post or image does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding posts, uploaded image metadata and
// admin sessions.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the admin write while pages are read; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    published INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS posts_date ON posts (published, date DESC);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS auth_sessions (
    id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    expires_at INTEGER NOT NULL
);
`)
	return err
}

const postColumns = `slug, title, date, tags, summary, content, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (blog.Post, error) {
	var slug, title, date, tags, summary, content string
	var published int
	if err := row.Scan(&slug, &title, &date, &tags, &summary, &content, &published); err != nil {
		return blog.Post{}, err
	}
	d, err := blog.ParseDate(date)
	if err != nil {
		return blog.Post{}, fmt.Errorf("post %q: %w", slug, err)
	}
	return blog.Post{
		ID:        slug,
		Title:     title,
		Date:      d,
		Tags:      ParseTags(tags),
		Summary:   summary,
		Body:      content,
		Published: published == 1,
	}, nil
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]blog.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []blog.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Posts returns every published post, newest first. It makes Store a blog.PostStore.
func (s *Store) Posts(ctx context.Context) ([]blog.Post, error) {
	return s.ListPosts(ctx, "")
}

// ListPosts returns published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(ctx context.Context, tag string) ([]blog.Post, error) {
	if tag == "" {
		return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE published = 1 ORDER BY date DESC, slug ASC`)
	}
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(tags, ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`,
		blog.NormalizeTag(tag))
}

// ListAllPosts returns every post, drafts included, newest first.
func (s *Store) ListAllPosts(ctx context.Context) ([]blog.Post, error) {
	return s.queryPosts(ctx, `SELECT `+postColumns+` FROM posts ORDER BY date DESC, slug ASC`)
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(ctx context.Context, slug string) (blog.Post, error) {
	return scanPost(s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPostAny returns a post by slug regardless of published status.
func (s *Store) GetPostAny(ctx context.Context, slug string) (blog.Post, error) {
	return scanPost(s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func savePost(ctx context.Context, db execer, p blog.Post) error {
	if p.Date.IsZero() {
		return fmt.Errorf("post %q: %w", p.ID, blog.ErrMalformedDate)
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if n := blog.NormalizeTag(t); n != "" {
			tags = append(tags, n)
		}
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Date.String(), ","+strings.Join(tags, ",")+",", p.Summary, p.Body, published)
	return err
}

// SavePost upserts a post. Tags are stored lower-cased as ",a,b,".
func (s *Store) SavePost(ctx context.Context, p blog.Post) error {
	return savePost(ctx, s.db, p)
}

// SavePosts upserts posts in a single transaction.
func (s *Store) SavePosts(ctx context.Context, posts []blog.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, p := range posts {
		if err := savePost(ctx, tx, p); err != nil {
			return fmt.Errorf("post %q: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// DeletePost removes a post by slug. Deleting a missing post is not an error.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// --- Images ---

// SaveImage records image metadata, replacing any row with the same filename.
func (s *Store) SaveImage(ctx context.Context, img views.Image) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages(ctx context.Context) ([]views.Image, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var images []views.Image
	for rows.Next() {
		var img views.Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(ctx context.Context, filename string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(ctx context.Context, filename string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// --- Sessions ---

// CreateSession issues a new admin session for subject valid for ttl.
func (s *Store) CreateSession(ctx context.Context, subject string, ttl time.Duration, now time.Time) (auth.Session, error) {
	sess := auth.Session{
		ID:        uuid.NewString(),
		Subject:   subject,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO auth_sessions (id, subject, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.Subject, sess.CreatedAt.UnixNano(), sess.ExpiresAt.UnixNano())
	if err != nil {
		return auth.Session{}, err
	}
	return sess, nil
}

// LookupSession implements auth.SessionStore.
func (s *Store) LookupSession(ctx context.Context, id string) (auth.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return auth.Session{}, auth.ErrInvalidToken
	}
	var sess auth.Session
	var created, expires int64
	err := s.db.QueryRowContext(ctx, `SELECT id, subject, created_at, expires_at FROM auth_sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.Subject, &created, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Session{}, auth.ErrInvalidToken
	}
	if err != nil {
		return auth.Session{}, err
	}
	sess.CreatedAt = time.Unix(0, created)
	sess.ExpiresAt = time.Unix(0, expires)
	return sess, nil
}

// DeleteSession revokes a session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = ?`, id)
	return err
}

// PurgeExpiredSessions deletes sessions that expired before now and returns how many were removed.
func (s *Store) PurgeExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE expires_at <= ?`, now.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
