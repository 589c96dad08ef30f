package repository

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"device_inventory/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOperatorSQLite_CreateAndLookup(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = conn.Close() }()
	repo := NewOperatorSQLite(conn)
	ctx := context.Background()

	id, err := repo.Create(ctx, "an.nguyen", "$2a$hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	if _, err := repo.Create(ctx, "an.nguyen", "$2a$other"); !errors.Is(err, ErrOperatorExists) {
		t.Fatalf("expected ErrOperatorExists, got %v", err)
	}

	byName, err := repo.ByUsername(ctx, "an.nguyen")
	if err != nil || byName == nil || byName.ID != id || byName.PasswordHash != "$2a$hash" {
		t.Fatalf("ByUsername: %+v, %v", byName, err)
	}
	byID, err := repo.ByID(ctx, id)
	if err != nil || byID == nil || byID.Username != "an.nguyen" {
		t.Fatalf("ByID: %+v, %v", byID, err)
	}

	if op, err := repo.ByUsername(ctx, "ghost"); err != nil || op != nil {
		t.Fatalf("unknown username: %+v, %v", op, err)
	}
	if op, err := repo.ByID(ctx, id+100); err != nil || op != nil {
		t.Fatalf("unknown id: %+v, %v", op, err)
	}
}

func TestOperatorSQLite_StoreErrors(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = conn.Close() }()
	repo := NewOperatorSQLite(conn)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(insertOperatorSQL)).
		WithArgs("binh.tran", "h").
		WillReturnError(errors.New("disk I/O error"))
	_, err = repo.Create(ctx, "binh.tran", "h")
	if err == nil || errors.Is(err, ErrOperatorExists) || !strings.Contains(err.Error(), "disk I/O error") {
		t.Fatalf("expected wrapped store error, got %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta(insertOperatorSQL)).
		WithArgs("chi.le", "h").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no rowid")))
	if _, err := repo.Create(ctx, "chi.le", "h"); err == nil || !strings.Contains(err.Error(), "no rowid") {
		t.Fatalf("expected last insert id error, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(operatorByIDSQL)).
		WithArgs(9).
		WillReturnError(errors.New("locked"))
	if op, err := repo.ByID(ctx, 9); err == nil || op != nil {
		t.Fatalf("expected query error, got %+v, %v", op, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
