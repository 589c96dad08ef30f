package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"device_inventory/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrOperatorExists is returned by Create when the username is taken.
var ErrOperatorExists = errors.New("operator already exists")

type OperatorSQLite struct {
	db *sql.DB
}

func NewOperatorSQLite(db *sql.DB) *OperatorSQLite { return &OperatorSQLite{db: db} }

var _ Operators = (*OperatorSQLite)(nil)

const (
	insertOperatorSQL     = `INSERT INTO operators (username, password_hash) VALUES (?, ?)`
	selectOperatorSQL     = `SELECT id, username, password_hash FROM operators`
	operatorByUsernameSQL = selectOperatorSQL + ` WHERE username = ?`
	operatorByIDSQL       = selectOperatorSQL + ` WHERE id = ?`
)

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// Create stores a new operator and returns its id. Usernames are stored as given;
// callers normalize them.
func (r *OperatorSQLite) Create(ctx context.Context, username, passwordHash string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertOperatorSQL, username, passwordHash)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("create operator %q: %w", username, ErrOperatorExists)
	}
	if err != nil {
		return 0, fmt.Errorf("create operator %q: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("operator %q id: %w", username, err)
	}
	return int(id), nil
}

// ByUsername returns (nil, nil) when no operator has that username.
func (r *OperatorSQLite) ByUsername(ctx context.Context, username string) (*models.Operator, error) {
	return r.one(ctx, operatorByUsernameSQL, username)
}

// ByID returns (nil, nil) when the operator does not exist.
func (r *OperatorSQLite) ByID(ctx context.Context, id int) (*models.Operator, error) {
	return r.one(ctx, operatorByIDSQL, id)
}

func (r *OperatorSQLite) one(ctx context.Context, query string, arg any) (*models.Operator, error) {
	var o models.Operator
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&o.ID, &o.Username, &o.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select operator %v: %w", arg, err)
	}
	return &o, nil
}
