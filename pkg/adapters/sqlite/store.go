// Package sqlite keeps rendered robots in a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/kinetree/pkg/domain"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	urdf       BLOB NOT NULL,
	source     BLOB,
	summary    TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
)`

// Store implements ports.DocumentStore on SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "kinetree.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; sqlite serializes them anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Save upserts the document.
func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO documents (name, urdf, source, summary, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			urdf = excluded.urdf,
			source = excluded.source,
			summary = excluded.summary,
			updated_at = excluded.updated_at`,
		doc.Name, doc.URDF, doc.Source, doc.Summary, doc.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %q: %w", doc.Name, err)
	}
	return nil
}

// Load reads a document.
func (s *Store) Load(ctx context.Context, name string) (*domain.Document, error) {
	var (
		doc     = domain.Document{Name: name}
		updated string
	)
	err := s.db.QueryRowContext(ctx, `SELECT urdf, source, summary, updated_at FROM documents WHERE name = ?`, name).
		Scan(&doc.URDF, &doc.Source, &doc.Summary, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	if doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("load %q: bad timestamp: %w", name, err)
	}
	return &doc, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}

// List returns all names in ascending order.
func (s *Store) List(ctx context.Context) (_ []string, retErr error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM documents ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
