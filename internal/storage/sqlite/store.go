// Package sqlite keeps save blobs in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/tidwall/gjson"
	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/academy/internal/storage/sqlite/migrations"
)

// Store provides SQLite-backed persistence for save blobs.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// DSN builds the connection string used by Open and by cmd/migrate.
func DSN(path string) string {
	return filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
}

// OpenDB opens the database file at path without migrating it. The parent
// directory is created when missing.
//
// Precondition: path must be non-empty.
func OpenDB(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	sqlDB, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return sqlDB, nil
}

// Open opens and migrates a save store at path.
//
// Precondition: path must be non-empty.
// Postcondition: Returns a Store whose schema is at the latest migration, or
// an error with the database closed.
func Open(path string) (*Store, error) {
	sqlDB, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// NewMigrator returns a golang-migrate instance over the embedded schema.
// Closing the migrator closes sqlDB.
func NewMigrator(sqlDB *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("loading embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(sqlDB *sql.DB) error {
	m, err := NewMigrator(sqlDB)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get loads the blob stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, fmt.Errorf("save key is required")
	}
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM saves WHERE save_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get save: %w", err)
	}
	return payload, true, nil
}

// Put upserts the blob under key. The blob's version tag, when present, is
// copied into its own column for inspection.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("save key is required")
	}
	version := gjson.GetBytes(data, "version").Int()
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO saves (save_key, payload, updated_at, save_version)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(save_key) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = excluded.updated_at,
		   save_version = excluded.save_version`,
		key, data, s.now().UTC().UnixMilli(), version,
	)
	if err != nil {
		return fmt.Errorf("put save: %w", err)
	}
	return nil
}

// Delete removes the blob under key. A missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("save key is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM saves WHERE save_key = ?`, key); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

// SaveInfo describes a stored blob without its payload.
type SaveInfo struct {
	Key       string
	Version   int
	UpdatedAt time.Time
}

// List returns metadata for every stored blob ordered by key.
func (s *Store) List(ctx context.Context) ([]SaveInfo, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT save_key, save_version, updated_at FROM saves ORDER BY save_key`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updated int64
		if err := rows.Scan(&info.Key, &info.Version, &updated); err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		info.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return out, nil
}
