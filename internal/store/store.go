// Package store persists the audit trail in an embedded SQLite database.
//
// The store owns exactly two append-only tables: operations (technical
// records) and business_logs (classified records). Schema creation is
// idempotent and runs once at boot; per-record writes each use their own
// connection from the pool so a failed write never holds state across
// requests.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the audit database handle. Safe for concurrent use.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path, creating the parent
// directory for file-backed databases if needed.
func Open(path string) (*Store, error) {
	if dir := parentDir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	// SQLite allows a single writer; one pooled connection avoids
	// SQLITE_BUSY under concurrent request flows.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// parentDir returns the directory to create for a file-backed DSN, or ""
// for in-memory and URI-style DSNs.
func parentDir(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}

// EnsureSchema creates the operations and business_logs tables if absent.
// Idempotent; safe to run on every boot. A failure here is fatal to startup:
// the process must not serve traffic against an unverified schema.
func (s *Store) EnsureSchema() error {
	if err := s.db.AutoMigrate(&Operation{}, &BusinessLog{}); err != nil {
		return fmt.Errorf("migrate audit tables: %w", err)
	}
	return nil
}

// CreateOperation inserts one technical record.
func (s *Store) CreateOperation(ctx context.Context, op *Operation) error {
	if err := s.db.WithContext(ctx).Create(op).Error; err != nil {
		return fmt.Errorf("insert operation record: %w", err)
	}
	return nil
}

// CreateBusinessLog inserts one business record.
func (s *Store) CreateBusinessLog(ctx context.Context, entry *BusinessLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert business log record: %w", err)
	}
	return nil
}

// DB exposes the underlying gorm handle for queries outside the write path
// (tests, ad-hoc inspection).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
