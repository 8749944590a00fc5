package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// CounterFile holds the last issued sequence number of a directory
	CounterFile = "counter.json"
	// DefaultLockTimeout bounds the wait for another process holding the lock
	DefaultLockTimeout = 5 * time.Second

	lockRetryDelay = 25 * time.Millisecond
)

type counterState struct {
	Counter int `json:"counter"`
}

// Counter issues sequential report codes from a per-directory counter file.
//
// On the OS filesystem every increment holds an exclusive lock on
// counter.json.lock, so concurrent processes sharing a directory never
// issue the same code. Other filesystems are single-process and skip it.
type Counter struct {
	fs          afero.Fs
	dir         string
	lockTimeout time.Duration
}

// NewCounter creates a counter stored in dir
func NewCounter(fs afero.Fs, dir string) *Counter {
	return &Counter{fs: fs, dir: dir, lockTimeout: DefaultLockTimeout}
}

// Path returns the counter file location
func (c *Counter) Path() string {
	return filepath.Join(c.dir, CounterFile)
}

// Current returns the last issued number. A missing or corrupt counter
// file counts as zero.
func (c *Counter) Current() int {
	data, err := afero.ReadFile(c.fs, c.Path())
	if err != nil {
		return 0
	}
	var state counterState
	if err := json.Unmarshal(data, &state); err != nil {
		return 0
	}
	return state.Counter
}

// Next increments the counter, persists it and returns prefix followed by
// the new value zero-padded to at least three digits
func (c *Counter) Next(ctx context.Context, prefix string) (string, error) {
	if err := c.fs.MkdirAll(c.dir, DefaultDirPerm); err != nil {
		return "", &StoreError{Op: "counter", Path: c.dir, Err: err}
	}

	unlock, err := c.lock(ctx)
	if err != nil {
		return "", &StoreError{Op: "counter", Path: c.Path(), Err: err}
	}
	defer unlock()

	next := c.Current() + 1

	data, err := json.MarshalIndent(counterState{Counter: next}, "", "  ")
	if err != nil {
		return "", &StoreError{Op: "counter", Path: c.Path(), Err: err}
	}
	if err := writeFileAtomic(c.fs, c.Path(), data); err != nil {
		return "", &StoreError{Op: "counter", Path: c.Path(), Err: err}
	}

	return FormatCode(prefix, next), nil
}

// FormatCode joins prefix and n padded to a minimum of three digits
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

func (c *Counter) lock(ctx context.Context) (func(), error) {
	if !isOS(c.fs) {
		return func() {}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.lockTimeout)
	defer cancel()

	fl := flock.New(c.Path() + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, err)
		}
		return nil, fmt.Errorf("failed to lock counter: %w", err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}
	return func() { _ = fl.Unlock() }, nil
}
