// Package sqlite implements the ResponseCache port as a single key/value
// table in an SQLite database. The cache is strictly best effort: a broken
// cache never breaks a fetch.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/openownership/boexplorer/internal/core/ports/driven"
)

// Ensure Cache implements the port.
var _ driven.ResponseCache = (*Cache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

// Cache stores raw registry response bodies keyed by request fingerprint.
type Cache struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the response cache at the given data directory.
// If dataDir is empty, defaults to ~/.boexplorer/cache.
func New(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".boexplorer", "cache")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "responses.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db, path: dbPath}, nil
}

// Get implements driven.ResponseCache.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT body FROM responses WHERE key = ?", key).Scan(&body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put implements driven.ResponseCache.
func (c *Cache) Put(ctx context.Context, key string, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO responses (key, body, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, created_at = excluded.created_at`,
		key, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the cache database file path.
func (c *Cache) Path() string {
	return c.path
}
