package internal

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session identifier has no stored table.
var ErrSessionNotFound = errors.New("session not found")

// StorageError represents errors reading or writing persisted records
type StorageError struct {
	Path string
	Op   string // "open", "read", "write", "rename", "remove"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing data
type ParseError struct {
	Source string // "csv", "sqlite", "stats", "recent", "comments", "config"
	Key    string // file path, table name or record key
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
