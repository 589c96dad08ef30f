package repository

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"device_inventory/internal/models"
	"device_inventory/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDocuments(t *testing.T) (*DocumentSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = conn.Close()
	}
	return NewDocumentSQLite(conn), mock, cleanup
}

func TestFieldPath(t *testing.T) {
	cases := map[string]string{
		"deviceName":     `$."deviceName"`,
		"departmentName": `$."departmentName"`,
		`we"ird`:         `$."we\"ird"`,
	}
	for in, want := range cases {
		if got := fieldPath(in); got != want {
			t.Fatalf("fieldPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDocumentSQLite_Find(t *testing.T) {
	repo, mock, cleanup := newMockDocuments(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "data"}).
		AddRow("d1", `{"name":"PC-01","departmentName":"P.101","specifications":{"ram":"8GB"}}`).
		AddRow("d2", `{"name":"PC-02","departmentName":"P.101"}`)
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentsWhereSQL)).
		WithArgs("DEVICES", `$."departmentName"`, "P.101").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "DEVICES", "departmentName", "P.101")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 2 || got[0].ID != "d1" || got[1].ID != "d2" {
		t.Fatalf("unexpected records: %+v", got)
	}
	if got[0].Fields["name"] != "PC-01" {
		t.Fatalf("fields not decoded: %+v", got[0].Fields)
	}
	if _, ok := got[0].Fields["specifications"].(map[string]any); !ok {
		t.Fatalf("nested specifications lost: %#v", got[0].Fields["specifications"])
	}
}

func TestDocumentSQLite_Find_Errors(t *testing.T) {
	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockDocuments(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentsWhereSQL)).
			WithArgs("ERROR", `$."deviceName"`, "PC-01").
			WillReturnError(errors.New("unavailable"))

		_, err := repo.Find(context.Background(), "ERROR", "deviceName", "PC-01")
		if err == nil || !strings.Contains(err.Error(), "unavailable") {
			t.Fatalf("expected wrapped query error, got %v", err)
		}
	})

	t.Run("bad body", func(t *testing.T) {
		repo, mock, cleanup := newMockDocuments(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectDocumentsWhereSQL)).
			WithArgs("USERS", `$."department"`, "P.101").
			WillReturnRows(sqlmock.NewRows([]string{"id", "data"}).AddRow("u1", `[1,2]`))

		_, err := repo.Find(context.Background(), "USERS", "department", "P.101")
		if err == nil || !strings.Contains(err.Error(), "decode USERS/u1") {
			t.Fatalf("expected decode error, got %v", err)
		}
	})
}

func TestDocumentSQLite_Import(t *testing.T) {
	repo, mock, cleanup := newMockDocuments(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertDocumentSQL)).
		WithArgs("USERS", "u1", `{"department":"P.101","fullname":"Nguyễn An"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertDocumentSQL)).
		WithArgs("USERS", "u2", `{}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.Import(context.Background(), "USERS", []models.Record{
		{ID: "u1", Fields: map[string]any{"fullname": "Nguyễn An", "department": "P.101"}},
		{ID: "u2"},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d, want 2", n)
	}
}

func TestDocumentSQLite_Import_RollsBack(t *testing.T) {
	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockDocuments(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(upsertDocumentSQL)).
			WithArgs("DEVICES", "d1", `{"name":"PC-01"}`).
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := repo.Import(context.Background(), "DEVICES", []models.Record{
			{ID: "d1", Fields: map[string]any{"name": "PC-01"}},
		})
		if err == nil || !strings.Contains(err.Error(), "upsert DEVICES/d1") {
			t.Fatalf("expected upsert error, got %v", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		repo, mock, cleanup := newMockDocuments(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := repo.Import(context.Background(), "DEVICES", []models.Record{{ID: " "}})
		if !errors.Is(err, errEmptyDocumentID) {
			t.Fatalf("expected errEmptyDocumentID, got %v", err)
		}
	})
}

func TestDocumentSQLite_ImportFindRoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = conn.Close() }()
	repo := NewDocumentSQLite(conn)
	ctx := context.Background()

	const room = `Phòng "Kỹ thuật" 2`
	devices := []models.Record{
		{ID: "d2", Fields: map[string]any{"name": "Máy in", "departmentName": room}},
		{ID: "d1", Fields: map[string]any{"name": "PC-01", "departmentName": room, "specifications": map[string]any{"ram": "8GB"}}},
		{ID: "d3", Fields: map[string]any{"name": "PC-03", "departmentName": float64(101)}},
		{ID: "d4", Fields: map[string]any{"name": "PC-04", "departmentName": "101"}},
		{ID: "d5", Fields: map[string]any{"name": "PC-05"}},
	}
	if n, err := repo.Import(ctx, "DEVICES", devices); err != nil || n != len(devices) {
		t.Fatalf("Import: n=%d err=%v", n, err)
	}
	if _, err := repo.Import(ctx, "USERS", []models.Record{{ID: "u1", Fields: map[string]any{"departmentName": room}}}); err != nil {
		t.Fatalf("Import users: %v", err)
	}

	cases := []struct {
		name  string
		label string
		want  []string
	}{
		{"non-ascii quoted label", room, []string{"d1", "d2"}},
		{"numeric field never matches a string label", "101", []string{"d4"}},
		{"no match", "P.999", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Find(ctx, "DEVICES", "departmentName", tc.label)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d records %+v, want ids %v", len(got), got, tc.want)
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("record %d: got id %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}

	got, err := repo.Find(ctx, "DEVICES", "departmentName", room)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	specs, ok := got[0].Value("specifications")
	if !ok {
		t.Fatalf("nested field lost: %+v", got[0])
	}
	if m, _ := specs.(map[string]any); m["ram"] != "8GB" {
		t.Fatalf("specifications = %#v", specs)
	}

	// re-import replaces the body
	if _, err := repo.Import(ctx, "DEVICES", []models.Record{{ID: "d2", Fields: map[string]any{"departmentName": "P.101"}}}); err != nil {
		t.Fatalf("re-import: %v", err)
	}
	got, err = repo.Find(ctx, "DEVICES", "departmentName", room)
	if err != nil || len(got) != 1 || got[0].ID != "d1" {
		t.Fatalf("after re-import: %+v, %v", got, err)
	}
}
