// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists a personal reference collection shared across
// projects, with a full-text index over authors, titles, and sources. A
// reference saved once can be pulled into the next project without
// retyping it.
// Implements: prd007-biblioteca (R1-R4);
//
//	docs/ARCHITECTURE § Reference Library.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/escriba/internal/refs"
	"github.com/pdiddy/escriba/pkg/types"
)

const dbFile = "biblioteca.db"

// Store manages the library SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the library database at dir/biblioteca.db,
// creating the schema on first use.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS referencias (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			fingerprint TEXT NOT NULL UNIQUE,
			tipo TEXT NOT NULL,
			autor TEXT NOT NULL,
			año TEXT NOT NULL,
			titulo TEXT NOT NULL,
			fuente TEXT,
			etiquetas TEXT,
			proyecto TEXT,
			agregada TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_referencias_tipo ON referencias(tipo)`,
		`CREATE INDEX IF NOT EXISTS idx_referencias_año ON referencias(año)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='referencias_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE referencias_fts USING fts5(autor, titulo, fuente, content=referencias, content_rowid=rowid)`,
			`CREATE TRIGGER referencias_ai AFTER INSERT ON referencias BEGIN
				INSERT INTO referencias_fts(rowid, autor, titulo, fuente) VALUES (new.rowid, new.autor, new.titulo, new.fuente);
			END`,
			`CREATE TRIGGER referencias_ad AFTER DELETE ON referencias BEGIN
				INSERT INTO referencias_fts(referencias_fts, rowid, autor, titulo, fuente) VALUES('delete', old.rowid, old.autor, old.titulo, old.fuente);
			END`,
			`CREATE TRIGGER referencias_au AFTER UPDATE ON referencias BEGIN
				INSERT INTO referencias_fts(referencias_fts, rowid, autor, titulo, fuente) VALUES('delete', old.rowid, old.autor, old.titulo, old.fuente);
				INSERT INTO referencias_fts(rowid, autor, titulo, fuente) VALUES (new.rowid, new.autor, new.titulo, new.fuente);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// fingerprint identifies a reference across projects: first author's
// surname, year, and title, lowercased. Re-importing the same work updates
// the stored row instead of duplicating it.
func fingerprint(r types.Reference) string {
	surname := strings.TrimSpace(strings.SplitN(r.Author, ",", 2)[0])
	return strings.ToLower(surname + "|" + strings.TrimSpace(r.Year) + "|" + strings.TrimSpace(r.Title))
}

// Add stores one reference, tagged and attributed to the project it came
// from. It reports whether a new row was created (false means an existing
// entry was refreshed).
func (s *Store) Add(ctx context.Context, r types.Reference, tags []string, origin string) (bool, error) {
	if err := refs.Validate(r); err != nil {
		return false, err
	}

	fp := fingerprint(r)
	var existing int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM referencias WHERE fingerprint = ?`, fp,
	).Scan(&existing); err != nil {
		return false, fmt.Errorf("checking for duplicate: %w", err)
	}

	tagsJSON, _ := json.Marshal(tags)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO referencias (fingerprint, tipo, autor, año, titulo, fuente, etiquetas, proyecto, agregada)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET
			tipo=excluded.tipo, autor=excluded.autor, año=excluded.año,
			titulo=excluded.titulo, fuente=excluded.fuente,
			etiquetas=excluded.etiquetas, proyecto=excluded.proyecto`,
		fp, string(r.Type), r.Author, r.Year, r.Title, r.Source,
		string(tagsJSON), origin, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("storing reference: %w", err)
	}
	return existing == 0, nil
}

// ImportSummary holds counts from a project import run.
type ImportSummary struct {
	Imported int
	Invalid  int
}

// ImportProject stores every reference of a project under the given origin
// label, writing one progress line per reference to w.
func (s *Store) ImportProject(ctx context.Context, references []types.Reference, origin string, w io.Writer) (ImportSummary, error) {
	var summary ImportSummary

	for _, r := range references {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if _, err := s.Add(ctx, r, nil, origin); err != nil {
			fmt.Fprintf(w, "omitida  %s (%s): %v\n", r.Author, r.Year, err)
			summary.Invalid++
			continue
		}
		fmt.Fprintf(w, "guardada %s (%s) %s\n", r.Author, r.Year, r.Title)
		summary.Imported++
	}

	fmt.Fprintf(w, "\nguardadas: %d, omitidas: %d\n", summary.Imported, summary.Invalid)
	return summary, nil
}

// Count returns the number of stored references.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM referencias`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting references: %w", err)
	}
	return n, nil
}
