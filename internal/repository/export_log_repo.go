package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"device_inventory/internal/models"

	"github.com/google/uuid"
)

type ExportLogSQLite struct {
	db *sql.DB
}

func NewExportLogSQLite(db *sql.DB) *ExportLogSQLite { return &ExportLogSQLite{db: db} }

var _ ExportLogRepo = (*ExportLogSQLite)(nil)

// timestamps are stored as fixed-width UTC text with microseconds, so range
// filters and newest-first ordering compare lexically
const timestampLayout = "2006-01-02 15:04:05.000000"

const (
	insertExportLogSQL = `
		INSERT INTO export_log (id, occurred_at, operator_id, chart_type, label, file_name, rows, range_start, range_end, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectExportLogSQL = `SELECT id, occurred_at, operator_id, chart_type, label, file_name, rows, range_start, range_end, status, error FROM export_log`
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func nullableTimestamp(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(timestampLayout, s.String, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Append inserts an entry. Empty ID and zero OccurredAt are filled in.
func (r *ExportLogSQLite) Append(ctx context.Context, e models.ExportLogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, insertExportLogSQL,
		e.ID,
		formatTimestamp(e.OccurredAt),
		e.OperatorID,
		string(e.ChartType),
		e.Label,
		nullableString(e.FileName),
		e.Rows,
		nullableTimestamp(e.RangeStart),
		nullableTimestamp(e.RangeEnd),
		strings.ToUpper(strings.TrimSpace(e.Status)),
		nullableString(e.Error),
	)
	if err != nil {
		return fmt.Errorf("insert export log %s: %w", e.ID, err)
	}
	return nil
}

// where builds the WHERE clause for q; zero fields add no condition.
func (q ExportLogQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}
	if !q.From.IsZero() {
		add("occurred_at >= ?", formatTimestamp(q.From))
	}
	if !q.To.IsZero() {
		add("occurred_at <= ?", formatTimestamp(q.To))
	}
	if q.OperatorID != 0 {
		add("operator_id = ?", q.OperatorID)
	}
	if t := strings.TrimSpace(q.ChartType); t != "" {
		add("chart_type = ?", t)
	}
	if l := strings.TrimSpace(q.Label); l != "" {
		add("label = ?", l)
	}
	if st := strings.ToUpper(strings.TrimSpace(q.Status)); st != "" {
		add("status = ?", st)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns the entries matching q, newest first. Entries written in the
// same microsecond fall back to insertion order.
func (r *ExportLogSQLite) List(ctx context.Context, q ExportLogQuery) ([]models.ExportLogEntry, error) {
	where, args := q.where()
	query := selectExportLogSQL + where + " ORDER BY occurred_at DESC, rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query export log: %w", err)
	}
	defer rows.Close()

	out := make([]models.ExportLogEntry, 0, 16)
	for rows.Next() {
		var (
			e                    models.ExportLogEntry
			occurredAt, chartTyp string
			fileName, errMsg     sql.NullString
			rangeStart, rangeEnd sql.NullString
		)
		if err := rows.Scan(&e.ID, &occurredAt, &e.OperatorID, &chartTyp, &e.Label, &fileName, &e.Rows, &rangeStart, &rangeEnd, &e.Status, &errMsg); err != nil {
			return nil, fmt.Errorf("scan export log: %w", err)
		}
		ts, err := time.ParseInLocation(timestampLayout, occurredAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", occurredAt, err)
		}
		e.OccurredAt = ts
		e.ChartType = models.ChartType(chartTyp)
		e.FileName = fileName.String
		e.Error = errMsg.String
		if e.RangeStart, err = parseTimestamp(rangeStart); err != nil {
			return nil, fmt.Errorf("parse range_start: %w", err)
		}
		if e.RangeEnd, err = parseTimestamp(rangeEnd); err != nil {
			return nil, fmt.Errorf("parse range_end: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
