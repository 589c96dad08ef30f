package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"device_inventory/internal/catalog"
	"device_inventory/internal/events"
	"device_inventory/internal/logger"
	"device_inventory/internal/metrics"
	"device_inventory/internal/models"
	"device_inventory/internal/repository"
)

// ExportRequest is a snapshot of what the operator confirmed: the visible
// records of one selector, the list title and, for error lists, the chosen range.
type ExportRequest struct {
	OperatorID int
	Selector   models.ChartSelector
	Records    []models.Record
	Title      string
	Range      *models.DateRange
}

type ExportResult struct {
	FileName string `json:"file_name"`
	Path     string `json:"-"`
	Rows     int    `json:"rows"`
}

type ExporterOptions struct {
	Dir            string
	ApplyDateRange bool
	DateField      string
}

// Exporter turns confirmed requests into xlsx files in the downloads directory.
type Exporter struct {
	dir        string
	applyRange bool
	dateField  string

	logRepo   repository.ExportLogRepo
	publisher events.Publisher
	log       *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	mu         sync.Mutex
	lastMillis int64
}

func NewExporter(opts ExporterOptions, logRepo repository.ExportLogRepo, pub events.Publisher, log *logger.Logger, m *metrics.Metrics) *Exporter {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Exporter{
		dir:        opts.Dir,
		applyRange: opts.ApplyDateRange,
		dateField:  opts.DateField,
		logRepo:    logRepo,
		publisher:  pub,
		log:        log,
		metrics:    m,
		now:        time.Now,
	}
}

// Export builds, renders and writes one workbook. Every attempt is recorded in
// the export log; successful ones are also published.
func (e *Exporter) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	res, err := e.export(req)

	entry := models.ExportLogEntry{
		OperatorID: req.OperatorID,
		ChartType:  req.Selector.Type,
		Label:      req.Selector.Label,
		FileName:   res.FileName,
		Rows:       res.Rows,
		Status:     models.ExportSucceeded,
	}
	if req.Range != nil {
		start, end := req.Range.Start, req.Range.End
		entry.RangeStart, entry.RangeEnd = &start, &end
	}
	outcome := metrics.OutcomeOK
	if err != nil {
		entry.Status = models.ExportFailed
		entry.Error = err.Error()
		outcome = metrics.OutcomeError
		var exportErr *ExportError
		permission := errors.As(err, &exportErr) && exportErr.Permission()
		e.log.Errorw("export_failed", "operator", req.OperatorID, "type", req.Selector.Type, "label", req.Selector.Label, "permission", permission, "err", err)
	} else {
		e.log.Infow("export_written", "operator", req.OperatorID, "type", req.Selector.Type, "label", req.Selector.Label, "file", res.FileName, "rows", res.Rows)
	}
	e.metrics.ObserveExport(string(req.Selector.Type), outcome, res.Rows)

	if e.logRepo != nil {
		if lerr := e.logRepo.Append(ctx, entry); lerr != nil {
			e.log.Warnw("export_log_append_failed", "err", lerr)
		}
	}
	if err == nil {
		if perr := e.publisher.PublishExport(ctx, entry); perr != nil {
			e.log.Warnw("export_publish_failed", "file", res.FileName, "err", perr)
		}
	}
	return res, err
}

func (e *Exporter) export(req ExportRequest) (ExportResult, error) {
	d, ok := catalog.Lookup(req.Selector.Type)
	if !ok || !d.Exportable() {
		return ExportResult{}, &ExportError{Selector: req.Selector, Op: "build", Err: ErrNoExportMapping}
	}

	records := req.Records
	if e.applyRange && req.Range != nil && req.Selector.Type == models.ChartError {
		records = FilterByRange(records, e.dateField, *req.Range)
	}

	header, _ := d.Header()
	rows := make([][]any, 0, len(records))
	for i, r := range records {
		row, _ := d.Row(r, i+1, req.Selector.Label)
		rows = append(rows, row)
	}

	buf, err := renderWorkbook(header, rows)
	if err != nil {
		return ExportResult{}, &ExportError{Selector: req.Selector, Op: "render", Err: err}
	}

	title := req.Title
	if title == "" {
		title = catalog.Title(req.Selector.Type, req.Selector.Label)
	}
	name := e.fileName(title)
	path, err := e.write(name, buf.Bytes())
	if err != nil {
		return ExportResult{}, &ExportError{Selector: req.Selector, Op: "write", Err: err}
	}
	return ExportResult{FileName: name, Path: path, Rows: len(rows)}, nil
}

var whitespace = regexp.MustCompile(`\s+`)

// fileName is "<title with whitespace runs as _>_<unix ms>.xlsx". The
// millisecond part is strictly increasing per exporter.
func (e *Exporter) fileName(title string) string {
	e.mu.Lock()
	ms := e.now().UnixMilli()
	if ms <= e.lastMillis {
		ms = e.lastMillis + 1
	}
	e.lastMillis = ms
	e.mu.Unlock()

	return fmt.Sprintf("%s_%d.xlsx", whitespace.ReplaceAllString(title, "_"), ms)
}

// write stores data under name through a temp file, so readers never see a
// partially written workbook.
func (e *Exporter) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(e.dir, ".export-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// FilePath resolves a previously written export. Names that would escape the
// downloads directory are treated as missing.
func (e *Exporter) FilePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrFileNotFound
	}
	path := filepath.Join(e.dir, name)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrFileNotFound
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrFileNotFound
	}
	return path, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
}

// FilterByRange keeps records whose field parses as a date inside r, compared
// by calendar day. Records with a missing or unparseable date are kept.
func FilterByRange(records []models.Record, field string, r models.DateRange) []models.Record {
	days := models.DateRange{
		Start: startOfDay(r.Start),
		End:   startOfDay(r.End).AddDate(0, 0, 1).Add(-time.Nanosecond),
	}
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		v, _ := rec.Value(field)
		t, ok := parseDate(v, r.Start.Location())
		if !ok || days.Contains(t) {
			out = append(out, rec)
		}
	}
	return out
}

func parseDate(v any, loc *time.Location) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
