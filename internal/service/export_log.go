package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"device_inventory/internal/models"
	"device_inventory/internal/repository"
)

// ErrInvalidFilter wraps every rejected export log filter.
var ErrInvalidFilter = errors.New("invalid export log filter")

// ExportLogFilter narrows the export audit trail. Zero fields match everything.
type ExportLogFilter struct {
	From       time.Time
	To         time.Time
	Type       string
	Label      string
	Status     string // SUCCESS | FAILED, any case
	OperatorID int
}

type ExportLogService struct {
	repo repository.ExportLogRepo
}

func NewExportLogService(repo repository.ExportLogRepo) *ExportLogService {
	return &ExportLogService{repo: repo}
}

// query validates f and turns it into a repository query in UTC.
func (f ExportLogFilter) query() (repository.ExportLogQuery, error) {
	q := repository.ExportLogQuery{
		OperatorID: f.OperatorID,
		ChartType:  strings.TrimSpace(f.Type),
		Label:      strings.TrimSpace(f.Label),
		Status:     strings.ToUpper(strings.TrimSpace(f.Status)),
	}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, fmt.Errorf("%w: from must be <= to", ErrInvalidFilter)
	}
	switch q.Status {
	case "", models.ExportSucceeded, models.ExportFailed:
	default:
		return q, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, f.Status)
	}
	if q.OperatorID < 0 {
		return q, fmt.Errorf("%w: operator %d", ErrInvalidFilter, q.OperatorID)
	}
	return q, nil
}

func (s *ExportLogService) List(ctx context.Context, f ExportLogFilter) ([]models.ExportLogEntry, error) {
	q, err := f.query()
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}
