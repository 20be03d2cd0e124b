package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteFile is the database file name created inside the data directory
const SQLiteFile = "vidgrab.db"

// SQLite is a Store backed by a single key/value table
type SQLite struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and creates if needed) the store inside dataDir
func OpenSQLite(dataDir string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dataDir, SQLiteFile))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000; PRAGMA journal_mode = WAL;`); err != nil {
		logger.Debug("sqlite pragmas not applied", "err", err)
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLite{db: db, logger: logger}, nil
}

// Close closes the underlying database
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.logger.Error("store read failed", "key", key, "err", err)
		return "", false
	}
	return value, true
}

func (s *SQLite) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		s.logger.Error("store write failed", "key", key, "err", err)
	}
}

// String returns the value stored under key, or "" when absent
func (s *SQLite) String(key string) string {
	v, _ := s.get(key)
	return v
}

// SetString stores value under key
func (s *SQLite) SetString(key string, value string) {
	s.set(key, value)
}

// BoolWithFallback returns the bool stored under key, or fallback when absent or unparsable
func (s *SQLite) BoolWithFallback(key string, fallback bool) bool {
	v, ok := s.get(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// SetBool stores value under key
func (s *SQLite) SetBool(key string, value bool) {
	s.set(key, strconv.FormatBool(value))
}

// RemoveValue deletes key
func (s *SQLite) RemoveValue(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		s.logger.Error("store delete failed", "key", key, "err", err)
	}
}
