// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/escriba/pkg/types"
)

// QueryOptions holds parameters for library queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over author, title, and
	// source.
	Query string

	// Type filters by reference type.
	Type types.ReferenceType

	// Year filters by publication year.
	Year string

	// Tags filters by one or more tags with AND semantics.
	Tags []string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Type == "" && q.Year == "" && len(q.Tags) == 0
}

// Entry is one stored reference with its library metadata.
type Entry struct {
	Reference types.Reference `json:"referencia" yaml:"referencia"`
	Tags      []string        `json:"etiquetas,omitempty" yaml:"etiquetas,omitempty"`
	Origin    string          `json:"proyecto,omitempty" yaml:"proyecto,omitempty"`
	Added     string          `json:"agregada,omitempty" yaml:"agregada,omitempty"`
}

// Retrieve queries the library with optional full-text search and
// structured filters. Full-text queries come back ranked by relevance;
// structured-only queries come back in APA order (author, then year).
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	if opts.IsEmpty() {
		return nil, fmt.Errorf("consulta vacía: indique un término o un filtro")
	}
	return s.query(ctx, opts)
}

// query runs the search without the empty-query guard; exports use it to
// dump the whole library.
func (s *Store) query(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT r.tipo, r.autor, r.año, r.titulo, r.fuente, r.etiquetas, r.proyecto, r.agregada
			FROM referencias_fts
			JOIN referencias r ON r.rowid = referencias_fts.rowid
			WHERE referencias_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT r.tipo, r.autor, r.año, r.titulo, r.fuente, r.etiquetas, r.proyecto, r.agregada
			FROM referencias r
			WHERE 1=1`)
	}

	if opts.Type != "" {
		qb.WriteString(` AND r.tipo = ?`)
		args = append(args, string(opts.Type))
	}

	if opts.Year != "" {
		qb.WriteString(` AND r.año = ?`)
		args = append(args, opts.Year)
	}

	for _, tag := range opts.Tags {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(r.etiquetas) WHERE value = ?)`)
		args = append(args, tag)
	}

	if useFTS {
		qb.WriteString(` ORDER BY referencias_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY lower(r.autor), r.año`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var (
			e        Entry
			refType  string
			source   sql.NullString
			tagsJSON sql.NullString
			origin   sql.NullString
			added    sql.NullString
		)

		if err := rows.Scan(
			&refType, &e.Reference.Author, &e.Reference.Year,
			&e.Reference.Title, &source, &tagsJSON, &origin, &added,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		e.Reference.Type = types.ReferenceType(refType)
		if source.Valid {
			e.Reference.Source = source.String
		}
		if tagsJSON.Valid {
			json.Unmarshal([]byte(tagsJSON.String), &e.Tags)
		}
		if origin.Valid {
			e.Origin = origin.String
		}
		if added.Valid {
			e.Added = added.String
		}

		results = append(results, e)
	}

	return results, rows.Err()
}
