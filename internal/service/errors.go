package service

import (
	"errors"
	"fmt"
	"io/fs"

	"device_inventory/internal/models"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("dialog event not allowed in current state")
	ErrNoExportMapping   = errors.New("chart type has no export mapping")
	ErrFileNotFound      = errors.New("export file not found")
)

// FetchError wraps a document store failure for one selector.
type FetchError struct {
	Selector models.ChartSelector
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s/%s: %v", e.Selector.Type, e.Selector.Label, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExportError reports a failed export step (build, render, write).
type ExportError struct {
	Selector models.ChartSelector
	Op       string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s/%s: %s: %v", e.Selector.Type, e.Selector.Label, e.Op, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Permission reports whether the failure was a storage permission denial.
func (e *ExportError) Permission() bool {
	return errors.Is(e.Err, fs.ErrPermission)
}
