// Package store persists report drafts and the report code counter.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDraftNotFound is returned when a draft location does not exist
	ErrDraftNotFound = errors.New("draft not found")
	// ErrLockTimeout is returned when the counter lock cannot be taken in time
	ErrLockTimeout = errors.New("timed out waiting for counter lock")
)

// StoreError records the failing operation and the file it touched
type StoreError struct {
	Op   string `json:"operation"`
	Path string `json:"path"`
	Err  error  `json:"error"`
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
