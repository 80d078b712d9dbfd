package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks lookups for rows that do not exist. Callers match it
// with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrTimerRunning is returned by StartTimer when the task already has a
// running timer. The call creates no record.
var ErrTimerRunning = errors.New("timer already running")

// ErrNoRunningTimer is returned by StopTimer when the task has no open
// timer. It also matches ErrNotFound.
var ErrNoRunningTimer = fmt.Errorf("no running timer: %w", ErrNotFound)

// ErrInvalid marks rejected input (empty title, negative estimate,
// unknown status). Nothing is written when it is returned.
var ErrInvalid = errors.New("invalid input")

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure, which is how the running-timer index rejects a second start.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
