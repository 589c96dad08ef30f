package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"device_inventory/internal/models"
)

type DocumentSQLite struct {
	db *sql.DB
}

func NewDocumentSQLite(db *sql.DB) *DocumentSQLite { return &DocumentSQLite{db: db} }

var _ DocumentStore = (*DocumentSQLite)(nil)

const (
	selectDocumentsWhereSQL = `SELECT id, data FROM documents WHERE collection = ? AND json_extract(data, ?) = ? ORDER BY id ASC`

	upsertDocumentSQL = `
		INSERT INTO documents (collection, id, data)
		VALUES (?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET data=excluded.data
	`
)

var errEmptyDocumentID = errors.New("document id is empty")

// fieldPath quotes a top-level field name as a JSON path.
func fieldPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, `\"`) + `"`
}

// Find returns every document in collection whose field equals value, ordered by id.
func (r *DocumentSQLite) Find(ctx context.Context, collection, field, value string) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectDocumentsWhereSQL, collection, fieldPath(field), value)
	if err != nil {
		return nil, fmt.Errorf("query %s where %s == %q: %w", collection, field, value, err)
	}
	defer rows.Close()

	out := make([]models.Record, 0, 32)
	for rows.Next() {
		var (
			id   string
			body string
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan %s document: %w", collection, err)
		}
		fields := map[string]any{}
		if err := json.Unmarshal([]byte(body), &fields); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		out = append(out, models.Record{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s documents: %w", collection, err)
	}
	return out, nil
}

// Import upserts docs into collection in a single transaction and returns how many were written.
func (r *DocumentSQLite) Import(ctx context.Context, collection string, docs []models.Record) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import %s: %w", collection, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, d := range docs {
		if strings.TrimSpace(d.ID) == "" {
			return 0, fmt.Errorf("import %s: %w", collection, errEmptyDocumentID)
		}
		fields := d.Fields
		if fields == nil {
			fields = map[string]any{}
		}
		body, err := json.Marshal(fields)
		if err != nil {
			return 0, fmt.Errorf("encode %s/%s: %w", collection, d.ID, err)
		}
		if _, err := tx.ExecContext(ctx, upsertDocumentSQL, collection, d.ID, string(body)); err != nil {
			return 0, fmt.Errorf("upsert %s/%s: %w", collection, d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import %s: %w", collection, err)
	}
	return len(docs), nil
}
