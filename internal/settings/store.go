package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Prefix namespaces every key written by the picker.
const Prefix = "picker/"

const schema = `CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Store is a SQLite-backed key/value settings store. Values are JSON encoded.
type Store struct {
	db   *sql.DB
	path string
}

// Key qualifies name with Prefix unless it already carries it.
func Key(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	return Prefix + strings.TrimPrefix(name, "/")
}

// Open opens or creates the settings database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	const dbDirPerm = 0o750
	if path == "" {
		return nil, errors.New("settings database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), dbDirPerm); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open settings database: %w", err)
	}
	configurePool(db)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect settings database: %w", err)
	}
	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}
	return nil
}

// configurePool keeps a single long-lived connection; SQLite has one writer.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Has reports whether key is stored.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM settings WHERE key = ?`, Key(key)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", Key(key), err)
	}
	return true, nil
}

// Get decodes the value of key into dest. It reports false when the key is
// not stored, leaving dest untouched.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok, err := s.raw(ctx, s.db, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", Key(key), err)
	}
	return true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	return s.set(ctx, s.db, key, value)
}

// Clear removes key.
func (s *Store) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, Key(key)); err != nil {
		return fmt.Errorf("clear %s: %w", Key(key), err)
	}
	return nil
}

// Bool returns the boolean stored at key or fallback.
func (s *Store) Bool(ctx context.Context, key string, fallback bool) bool {
	value := fallback
	if ok, err := s.Get(ctx, key, &value); err != nil || !ok {
		return fallback
	}
	return value
}

// Entry is a stored key with its raw JSON value.
type Entry struct {
	Key   string
	Value string
}

// Entries lists every stored key in key order.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) raw(ctx context.Context, q querier, key string) (string, bool, error) {
	var raw string
	err := q.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, Key(key)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", Key(key), err)
	}
	return raw, true, nil
}

func (s *Store) set(ctx context.Context, q querier, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", Key(key), err)
	}
	_, err = q.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		Key(key), string(data))
	if err != nil {
		return fmt.Errorf("write %s: %w", Key(key), err)
	}
	return nil
}

// update runs fn inside a transaction.
func (s *Store) update(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
