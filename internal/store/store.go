// Package store keeps a local SQLite history of scanned cards.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// timeLayout is fixed width so that created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrSchemaMismatch indicates the database was created by an incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Scan is one recorded card scan.
type Scan struct {
	ID        string
	ChatID    int64
	Card      card.Card
	Text      string
	Images    int
	CreatedAt time.Time
}

// Store manages scan persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}

	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// SaveScan inserts a scan. A missing ID, image count or timestamp is filled in.
func (s *Store) SaveScan(ctx context.Context, scan *Scan) error {
	if scan == nil {
		return errors.New("save scan: nil scan")
	}
	if scan.ID == "" {
		scan.ID = uuid.NewString()
	}
	if scan.Images <= 0 {
		scan.Images = 1
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now()
	}

	c := scan.Card
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (
            id, chat_id, name, designation, company, phone, email, website,
            address, industry, services, ocr_text, images, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.ID, scan.ChatID,
		c.Name, c.Designation, c.Company, c.Phone, c.Email, c.Website,
		c.Address, c.Industry, c.Services,
		scan.Text, scan.Images,
		scan.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	return nil
}

const selectScan = `SELECT id, chat_id, name, designation, company, phone, email, website,
       address, industry, services, ocr_text, images, created_at
FROM scans`

// LatestForChat returns the most recent scan of a chat, or nil when there is none.
func (s *Store) LatestForChat(ctx context.Context, chatID int64) (*Scan, error) {
	row := s.db.QueryRowContext(ctx, selectScan+` WHERE chat_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, chatID)

	scan, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest scan for chat %d: %w", chatID, err)
	}

	return scan, nil
}

// Recent lists the newest scans first. A zero chatID lists every chat.
func (s *Store) Recent(ctx context.Context, chatID int64, limit int) ([]Scan, error) {
	if limit <= 0 {
		limit = 20
	}

	query := selectScan
	args := []any{}
	if chatID != 0 {
		query += ` WHERE chat_id = ?`
		args = append(args, chatID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("read scan row: %w", err)
		}
		scans = append(scans, *scan)
	}

	return scans, rows.Err()
}

// Count returns the number of recorded scans.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scans: %w", err)
	}

	return n, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(r rowScanner) (*Scan, error) {
	var (
		scan      Scan
		createdAt string
	)
	c := &scan.Card
	if err := r.Scan(
		&scan.ID, &scan.ChatID,
		&c.Name, &c.Designation, &c.Company, &c.Phone, &c.Email, &c.Website,
		&c.Address, &c.Industry, &c.Services,
		&scan.Text, &scan.Images, &createdAt,
	); err != nil {
		return nil, err
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	scan.CreatedAt = ts

	return &scan, nil
}
