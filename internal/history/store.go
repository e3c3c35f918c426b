// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a ledger of written catalogs in SQLite so the
// user can see what was generated, when, and where it went.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

// defaultLimit bounds List when the caller passes no limit.
const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the history database at path, creating the
// parent directory and schema as needed.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			catalog TEXT NOT NULL,
			mode TEXT NOT NULL,
			output_path TEXT NOT NULL,
			pages INTEGER NOT NULL,
			overlays INTEGER NOT NULL,
			groups_json TEXT,
			sheet_path TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_builds_catalog ON builds(catalog)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec. Empty ID and zero CreatedAt are filled in; the
// stored record is returned.
func (s *Store) Record(ctx context.Context, rec types.BuildRecord) (types.BuildRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Second)

	groupsJSON, err := json.Marshal(rec.Groups)
	if err != nil {
		return rec, fmt.Errorf("encoding groups: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO builds (id, catalog, mode, output_path, pages, overlays, groups_json, sheet_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Catalog, rec.Mode, rec.OutputPath, rec.Pages, rec.Overlays,
		string(groupsJSON), rec.SheetPath, rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return rec, fmt.Errorf("inserting build %s: %w", rec.ID, err)
	}
	return rec, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Catalog restricts results to one catalog name.
	Catalog string

	// Limit caps the result count. Zero uses the default.
	Limit int
}

// List returns recorded builds, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.BuildRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	query := `SELECT id, catalog, mode, output_path, pages, overlays, groups_json, sheet_path, created_at
		FROM builds`
	args := []any{}
	if opts.Catalog != "" {
		query += ` WHERE catalog = ?`
		args = append(args, opts.Catalog)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var out []types.BuildRecord
	for rows.Next() {
		var (
			rec        types.BuildRecord
			groupsJSON sql.NullString
			sheetPath  sql.NullString
			createdAt  string
		)
		if err := rows.Scan(&rec.ID, &rec.Catalog, &rec.Mode, &rec.OutputPath,
			&rec.Pages, &rec.Overlays, &groupsJSON, &sheetPath, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning build: %w", err)
		}
		if groupsJSON.Valid && groupsJSON.String != "" {
			if err := json.Unmarshal([]byte(groupsJSON.String), &rec.Groups); err != nil {
				return nil, fmt.Errorf("decoding groups of build %s: %w", rec.ID, err)
			}
		}
		rec.SheetPath = sheetPath.String
		if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing timestamp of build %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
