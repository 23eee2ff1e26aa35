package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"emotree/internal/logging"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "modernc.org/sqlite"          // registers "sqlite"
)

const memoryPath = ":memory:"

// SQLiteBackend stores the blob as one row of the kv_store table.
type SQLiteBackend struct {
	db     *sql.DB
	dbPath string
	key    string
}

// NewSQLiteBackend opens (creating if needed) the database at path with the
// given database/sql driver. Empty driver and key select "sqlite" and "emotree".
func NewSQLiteBackend(path, driver, key string, busyTimeout time.Duration) (*SQLiteBackend, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewSQLiteBackend")
	defer timer.Stop()

	if driver == "" {
		driver = "sqlite"
	}
	if key == "" {
		key = "emotree"
	}
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}

	logging.Store("Opening sqlite backend at %s (driver=%s, key=%s)", path, driver, key)

	if path != memoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			logging.Get(logging.CategoryStore).Error("Failed to create directory %s: %v", dir, err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: an in-memory database lives and dies with its connection,
	// and it keeps every read-modify-write on a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds())); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if path != memoryPath {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
		}
	}

	b := &SQLiteBackend{db: db, dbPath: path, key: key}
	if err := b.initialize(); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to initialize schema: %v", err)
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) initialize() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := b.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create kv_store: %w", err)
	}
	return nil
}

// Load returns the stored blob, or nil when the key has no row.
func (b *SQLiteBackend) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", b.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.key, err)
	}
	return []byte(value), nil
}

// Update runs the read-modify-write inside one transaction.
func (b *SQLiteBackend) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current []byte
	var value string
	err = tx.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", b.key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", b.key, err)
	default:
		current = []byte(value)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		b.key, string(next))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", b.key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	logging.StoreDebug("Wrote %d bytes to kv_store[%s]", len(next), b.key)
	return nil
}

// Path returns the database path.
func (b *SQLiteBackend) Path() string { return b.dbPath }

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
