// ABOUTME: SQLite-backed NoteStore connection and lifecycle management
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/harper/ideanotes/internal/vector"
)

// Store is the SQLite implementation of storage.NoteStore. One Store
// owns one connection; the hosting process creates it at startup and
// closes it once at shutdown.
type Store struct {
	conn   *sql.DB
	path   string
	dim    int
	metric vector.Metric
}

// DefaultDataDir returns the default data directory following XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/ideanotes"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "ideanotes")
}

// DefaultDBPath returns the default database file path.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "notes.db")
}

// Open opens or creates the database at the given path. dim is the
// fixed embedding dimension for the whole store; metric is the single
// distance function used by every search against it.
func Open(path string, dim int, metric vector.Metric) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL for read concurrency, foreign keys for cascade delete
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		conn:   conn,
		path:   path,
		dim:    dim,
		metric: metric,
	}

	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// OpenInMemory creates an in-memory store (for testing).
func OpenInMemory(dim int, metric vector.Metric) (*Store, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	// Every pooled connection would get its own empty :memory: database
	conn.SetMaxOpenConns(1)

	s := &Store{
		conn:   conn,
		dim:    dim,
		metric: metric,
	}

	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates tables and indexes if they don't exist.
func (s *Store) initSchema() error {
	_, err := s.conn.Exec(Schema)
	return err
}

// Dimension returns the store's configured embedding dimension.
func (s *Store) Dimension() int {
	return s.dim
}

// Metric returns the store's distance metric.
func (s *Store) Metric() vector.Metric {
	return s.metric
}

// Path returns the database file path (empty for in-memory stores).
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
