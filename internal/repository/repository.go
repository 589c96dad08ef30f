package repository

import (
	"context"
	"database/sql"
	"time"

	"device_inventory/internal/models"
)

// Operators stores the API accounts that open sessions and run exports.
type Operators interface {
	Create(ctx context.Context, username, hash string) (int, error)
	ByUsername(ctx context.Context, username string) (*models.Operator, error)
	ByID(ctx context.Context, id int) (*models.Operator, error)
}

// DocumentStore is the read side of the remote document database plus the
// write path used by seeding.
type DocumentStore interface {
	Find(ctx context.Context, collection, field, value string) ([]models.Record, error)
	Import(ctx context.Context, collection string, docs []models.Record) (int, error)
}

// ExportLogQuery narrows an export log listing. Zero fields match everything.
type ExportLogQuery struct {
	From       time.Time
	To         time.Time
	OperatorID int
	ChartType  string
	Label      string
	Status     string
}

type ExportLogRepo interface {
	Append(ctx context.Context, e models.ExportLogEntry) error
	List(ctx context.Context, q ExportLogQuery) ([]models.ExportLogEntry, error)
}

type Repository struct {
	Documents DocumentStore
	ExportLog ExportLogRepo
	Operators Operators
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Documents: NewDocumentSQLite(db),
		ExportLog: NewExportLogSQLite(db),
		Operators: NewOperatorSQLite(db),
	}
}
