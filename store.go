package webzine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when a requested post or category does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database and provides CRUD operations for posts and
// categories.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write access, busy timeout so writers wait
	// instead of failing with SQLITE_BUSY; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
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
    excerpt TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    featured_image TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'draft',
    published_at TEXT,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    slug TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS post_categories (
    post_slug TEXT NOT NULL REFERENCES posts(slug) ON DELETE CASCADE,
    category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    PRIMARY KEY (post_slug, category_id)
);

CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status, published_at);
`)
	return err
}

const postColumns = `slug, title, excerpt, body, featured_image, author, status, published_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	var status string
	var publishedAt sql.NullString
	var updatedAt string
	err := row.Scan(&p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.FeaturedImage, &p.Author, &status, &publishedAt, &updatedAt)
	if err != nil {
		return Post{}, err
	}
	st, err := ParseStatus(status)
	if err != nil {
		return Post{}, err
	}
	p.Status = st
	if publishedAt.Valid && publishedAt.String != "" {
		t, err := time.Parse(time.RFC3339, publishedAt.String)
		if err != nil {
			return Post{}, fmt.Errorf("parse published_at for %s: %w", p.Slug, err)
		}
		p.PublishedAt = &t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		p.UpdatedAt = t
	}
	p.Link = "/blog/" + p.Slug
	return p, nil
}

// GetPublishedPost returns a single publicly visible post by slug: published
// status with a publication timestamp set and not in the future.
func (s *Store) GetPublishedPost(slug string) (Post, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts
		WHERE slug = ? AND status = 'published' AND published_at IS NOT NULL AND published_at <= ?`, slug, now)
	p, err := scanPost(row)
	if err != nil {
		return Post{}, err
	}
	if err := s.attachCategories(&p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// GetPostAny returns a post by slug regardless of visibility (for admin).
func (s *Store) GetPostAny(slug string) (Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if err != nil {
		return Post{}, err
	}
	if err := s.attachCategories(&p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// ListPublished returns publicly visible posts ordered by publication date
// descending. If categorySlug is non-empty, results are filtered to posts in
// that category.
func (s *Store) ListPublished(categorySlug string) ([]Post, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var rows *sql.Rows
	var err error
	if categorySlug == "" {
		rows, err = s.db.Query(`SELECT `+postColumns+` FROM posts
			WHERE status = 'published' AND published_at IS NOT NULL AND published_at <= ?
			ORDER BY published_at DESC`, now)
	} else {
		rows, err = s.db.Query(`SELECT p.slug, p.title, p.excerpt, p.body, p.featured_image, p.author, p.status, p.published_at, p.updated_at
			FROM posts p
			JOIN post_categories pc ON pc.post_slug = p.slug
			JOIN categories c ON c.id = pc.category_id
			WHERE c.slug = ? AND p.status = 'published' AND p.published_at IS NOT NULL AND p.published_at <= ?
			ORDER BY p.published_at DESC`, categorySlug, now)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collectPosts(rows)
}

// ListAllPosts returns every post regardless of status, newest first (for admin).
func (s *Store) ListAllPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.collectPosts(rows)
}

func (s *Store) collectPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range posts {
		if err := s.attachCategories(&posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (s *Store) attachCategories(p *Post) error {
	rows, err := s.db.Query(`SELECT c.id, c.name, c.slug, c.description
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_slug = ?
		ORDER BY c.name`, p.Slug)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return err
		}
		p.Categories = append(p.Categories, c)
	}
	return rows.Err()
}

// SavePost upserts a post and reconciles its category set in one transaction.
// Category membership is applied as an add/remove diff against the current
// join rows, so an interrupted save never transiently strips the post of all
// its categories.
func (s *Store) SavePost(p Post, categoryIDs []int64) error {
	if _, err := ParseStatus(string(p.Status)); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var publishedAt any
	if p.PublishedAt != nil {
		publishedAt = p.PublishedAt.UTC().Format(time.RFC3339)
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err = tx.Exec(`INSERT INTO posts (slug, title, excerpt, body, featured_image, author, status, published_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			title = excluded.title,
			excerpt = excluded.excerpt,
			body = excluded.body,
			featured_image = excluded.featured_image,
			author = excluded.author,
			status = excluded.status,
			published_at = excluded.published_at,
			updated_at = excluded.updated_at`,
		p.Slug, p.Title, p.Excerpt, p.Body, p.FeaturedImage, p.Author, string(p.Status),
		publishedAt, updatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	current := make(map[int64]bool)
	rows, err := tx.Query(`SELECT category_id FROM post_categories WHERE post_slug = ?`, p.Slug)
	if err != nil {
		return err
	}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	wanted := make(map[int64]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
		if !current[id] {
			if _, err := tx.Exec(`INSERT INTO post_categories (post_slug, category_id) VALUES (?, ?)`, p.Slug, id); err != nil {
				return err
			}
		}
	}
	for id := range current {
		if !wanted[id] {
			if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_slug = ? AND category_id = ?`, p.Slug, id); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// DeletePost removes a post by slug; join rows cascade.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories() ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, name, slug, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// SaveCategory inserts or updates a category. The slug is always re-derived
// from the name so the two never drift apart.
func (s *Store) SaveCategory(c Category) (Category, error) {
	c.Slug = Slugify(c.Name)
	if c.Slug == "" {
		return Category{}, fmt.Errorf("category name %q produces an empty slug", c.Name)
	}
	if c.ID == 0 {
		res, err := s.db.Exec(`INSERT INTO categories (name, slug, description) VALUES (?, ?, ?)`,
			c.Name, c.Slug, c.Description)
		if err != nil {
			return Category{}, err
		}
		c.ID, err = res.LastInsertId()
		if err != nil {
			return Category{}, err
		}
		return c, nil
	}
	_, err := s.db.Exec(`UPDATE categories SET name = ?, slug = ?, description = ? WHERE id = ?`,
		c.Name, c.Slug, c.Description, c.ID)
	return c, err
}

// DeleteCategory removes a category; join rows cascade.
func (s *Store) DeleteCategory(id int64) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
