package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"device_inventory/internal/models"
	"device_inventory/internal/service"
)

func TestExportsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	logs := &mockExportLog{resp: []models.ExportLogEntry{
		{ID: "e1", OccurredAt: now, ChartType: models.ChartError, Label: "PC", Status: models.ExportSucceeded},
		{ID: "e2", OccurredAt: now, ChartType: models.ChartError, Label: "PC", Status: models.ExportFailed},
	}}
	s := &service.Service{Authorization: &mockAuth{}, ExportLog: logs}

	w := doAuthed(t, s, http.MethodGet, "/api/v1/exports?from=notatime", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = doAuthed(t, s, http.MethodGet, "/api/v1/exports?from=2025-09-02&to=2025-09-01", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for reversed range, got %d", w.Code)
	}

	w = doAuthed(t, s, http.MethodGet, "/api/v1/exports?from=2025-09-01&to=2025-09-01&type=error", "")
	if w.Code != http.StatusOK {
		t.Fatalf("exports status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int                     `json:"count"`
		Exports []models.ExportLogEntry `json:"exports"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Exports) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastFilter.Type != "error" {
		t.Fatalf("expected type %q, got %q", "error", logs.lastFilter.Type)
	}
	if logs.lastFilter.OperatorID != 0 {
		t.Fatalf("operator filter set without mine: %d", logs.lastFilter.OperatorID)
	}
	wantTo := time.Date(2025, 9, 1, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastFilter.To.Equal(wantTo) {
		t.Fatalf("date-only 'to' should cover the whole day: %v", logs.lastFilter.To)
	}
}

func TestExportsHandler_OperatorStatusLabelFilters(t *testing.T) {
	logs := &mockExportLog{}
	s := &service.Service{Authorization: &mockAuth{parseID: 21}, ExportLog: logs}

	w := doAuthed(t, s, http.MethodGet, "/api/v1/exports?mine=true&status=failed&label=P.101", "")
	if w.Code != http.StatusOK {
		t.Fatalf("exports status=%d, body=%s", w.Code, w.Body.String())
	}
	f := logs.lastFilter
	if f.OperatorID != 21 || f.Status != "failed" || f.Label != "P.101" {
		t.Fatalf("filter passed = %+v", f)
	}
}

func TestExportsHandler_InvalidFilter(t *testing.T) {
	logs := &mockExportLog{err: fmt.Errorf("%w: unknown status %q", service.ErrInvalidFilter, "MAYBE")}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, ExportLog: logs}

	w := doAuthed(t, s, http.MethodGet, "/api/v1/exports?status=maybe", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	logs.err = errors.New("disk I/O error")
	w = doAuthed(t, s, http.MethodGet, "/api/v1/exports", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestExportsHandler_Download(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.xlsx")
	if err := os.WriteFile(path, []byte("xlsx"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := &service.Service{Authorization: &mockAuth{}, Downloads: &mockDownloads{path: path}}

	w := doAuthed(t, s, http.MethodGet, "/api/v1/exports/files/a.xlsx", "")
	if w.Code != http.StatusOK {
		t.Fatalf("download status=%d", w.Code)
	}
	if w.Body.String() != "xlsx" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Fatalf("missing Content-Disposition header")
	}

	s.Downloads = &mockDownloads{err: service.ErrFileNotFound}
	w = doAuthed(t, s, http.MethodGet, "/api/v1/exports/files/missing.xlsx", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
