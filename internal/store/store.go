// Package store holds the post collection for People's News.
//
// Posts live in a private, memory-only SQLite database that exists for the
// lifetime of the Store. Nothing is written to disk and nothing survives
// Close.
//
// # Ordering
//
// Every insert takes the next value of an autoincrement sequence. All
// returns posts newest-insert-first, which is the order the feed shows.
//
// # Thread Safety
//
// Store is safe for concurrent use. Writes hold the write lock and the
// database is limited to a single connection, so inserts and view
// increments are serialized.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/abelbrown/peoplesnews/internal/model"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// Store is the ordered, append-only post collection.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens an empty in-memory store.
func New() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Each connection to ":memory:" is its own database; keep exactly one
	// and never let the pool retire it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		kind INTEGER NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		media_uri TEXT NOT NULL DEFAULT '',
		media_kind TEXT NOT NULL DEFAULT '',
		views INTEGER NOT NULL DEFAULT 0 CHECK (views >= 0),
		live INTEGER NOT NULL DEFAULT 0,
		lat REAL,
		lng REAL,
		created_at INTEGER NOT NULL, -- unix seconds
		created_ns INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close releases the database. The posts are gone afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Insert prepends p to the collection.
// Fails with model.ErrInvalidPost when p is malformed or its id is taken.
func (s *Store) Insert(p model.Post) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertLocked(p)
}

// Seed inserts posts so that All returns them in the given order.
// Stops at the first failure; earlier posts stay inserted.
func (s *Store) Seed(posts []model.Post) error {
	for i := len(posts) - 1; i >= 0; i-- {
		if err := s.Insert(posts[i]); err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
	}
	return nil
}

// insertLocked writes p. Caller must hold the write lock.
func (s *Store) insertLocked(p model.Post) error {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM posts WHERE id = ?", p.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check id %s: %w", p.ID, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: duplicate id %s", model.ErrInvalidPost, p.ID)
	}

	var lat, lng sql.NullFloat64
	if p.Geo != nil {
		lat = sql.NullFloat64{Float64: p.Geo.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: p.Geo.Lng, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO posts (
			id, kind, author, category, brand, body, media_uri, media_kind,
			views, live, lat, lng, created_at, created_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		int(p.Kind),
		p.Author,
		string(p.Category),
		p.Brand,
		p.Text,
		p.Media.URI,
		string(p.Media.Kind),
		p.Views,
		boolToInt(p.Live),
		lat,
		lng,
		p.CreatedAt.Unix(),
		p.CreatedAt.Nanosecond(),
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", p.ID, err)
	}
	return nil
}

// All returns every post, most recently inserted first.
// The slice is a copy; changing it does not change the store.
func (s *Store) All() ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPosts(`
		SELECT id, kind, author, category, brand, body, media_uri, media_kind,
			views, live, lat, lng, created_at, created_ns
		FROM posts
		ORDER BY seq DESC
	`)
}

// Get returns the post with the given id, or model.ErrNotFound.
func (s *Store) Get(id string) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := s.queryPosts(`
		SELECT id, kind, author, category, brand, body, media_uri, media_kind,
			views, live, lat, lng, created_at, created_ns
		FROM posts
		WHERE id = ?
	`, id)
	if err != nil {
		return model.Post{}, err
	}
	if len(posts) == 0 {
		return model.Post{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	return posts[0], nil
}

// RecordView adds one view to the post, or fails with model.ErrNotFound.
func (s *Store) RecordView(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("UPDATE posts SET views = views + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("record view %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record view %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	return nil
}

// Len returns the number of posts and ads held.
func (s *Store) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// Reset empties the store. It exists for reinitialization and tests; it is
// the only operation that lowers a view count.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM posts"); err != nil {
		return fmt.Errorf("reset posts: %w", err)
	}
	return nil
}

// queryPosts executes a query and scans the rows into posts.
// Caller must hold s.mu (read lock is sufficient).
func (s *Store) queryPosts(query string, args ...any) ([]model.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var (
			p         model.Post
			kind      int
			category  string
			mediaKind string
			live      int
			lat, lng  sql.NullFloat64
			createdAt int64
			createdNs int64
		)
		err := rows.Scan(
			&p.ID,
			&kind,
			&p.Author,
			&category,
			&p.Brand,
			&p.Text,
			&p.Media.URI,
			&mediaKind,
			&p.Views,
			&live,
			&lat,
			&lng,
			&createdAt,
			&createdNs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Kind = model.Kind(kind)
		p.Category = model.Category(category)
		p.Media.Kind = model.MediaKind(mediaKind)
		p.Live = live != 0
		if lat.Valid && lng.Valid {
			p.Geo = &model.Geo{Lat: lat.Float64, Lng: lng.Float64}
		}
		p.CreatedAt = time.Unix(createdAt, createdNs)
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// boolToInt converts a bool to an int for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
