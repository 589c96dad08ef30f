package service

import (
	"context"
	"time"

	"device_inventory/internal/events"
	"device_inventory/internal/logger"
	"device_inventory/internal/metrics"
	"device_inventory/internal/models"
	"device_inventory/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(ctx context.Context, accessToken string) (int, error)
}

// Lists exposes list sessions: fetch, search and the export dialog. A session
// belongs to the operator that opened it and is invisible to everyone else.
type Lists interface {
	Open(ctx context.Context, operatorID int, sel models.ChartSelector) (View, error)
	View(operatorID int, id string) (View, error)
	Search(operatorID int, id, query string) (View, error)
	Refresh(ctx context.Context, operatorID int, id string) (View, error)
	Dispatch(ctx context.Context, operatorID int, id string, ev DialogEvent) (DialogStep, error)
	Subscribe(operatorID int, id string) (<-chan View, func(), error)
	Close(operatorID int, id string) error
}

// ExportLog exposes the export audit trail with filtering access.
type ExportLog interface {
	List(ctx context.Context, f ExportLogFilter) ([]models.ExportLogEntry, error)
}

// Downloads resolves files written by the exporter.
type Downloads interface {
	FilePath(name string) (string, error)
}

// Reaper runs the background loop that closes idle sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Reaper interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Lists
	ExportLog
	Downloads
	Reaper
	Authorization
}

// Options carries the settings NewService needs from the loaded config.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
	Export     ExporterOptions
	IdleTTL    time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, pub events.Publisher, log *logger.Logger, m *metrics.Metrics, opts Options) *Service {
	fetcher := NewRecordFetcher(repos.Documents, log, m)
	exporter := NewExporter(opts.Export, repos.ExportLog, pub, log, m)
	sessions := NewSessions(fetcher, exporter, opts.IdleTTL, log, m)
	return &Service{
		Lists:         sessions,
		ExportLog:     NewExportLogService(repos.ExportLog),
		Downloads:     exporter,
		Reaper:        sessions,
		Authorization: NewAuthService(repos.Operators, opts.SigningKey, opts.TokenTTL),
	}
}
