package store

import (
	"fmt"
	"time"
)

// Status is the closed set of task states. Validated at the boundary;
// the database carries a matching CHECK constraint.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCodeReview Status = "code_review"
	StatusDone       Status = "done"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusInProgress, StatusCodeReview, StatusDone:
		return Status(raw), nil
	}
	return "", fmt.Errorf("invalid task status %q", raw)
}

type User struct {
	ID        int64
	Username  string
	Email     string
	Role      string // admin or user
	CreatedAt time.Time
}

type Project struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Task struct {
	ID             int64
	ProjectID      int64
	AssignedUserID *int64
	Title          string
	EstimatedTime  int64 // seconds, >= 0; 0 disables budget tracking
	StartDate      *time.Time
	EndDate        *time.Time
	Status         Status
	Overtime       int64 // cached, recomputed on stop
	SavedTime      int64 // cached, recomputed on stop
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Timer is one start/stop work session against a task. EndTime and
// Duration are set exactly once, when the timer is stopped.
type Timer struct {
	ID        int64
	TaskID    int64
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64 // seconds, present only once stopped
	CreatedAt time.Time
}

// Running reports whether the timer has not been stopped yet.
func (t *Timer) Running() bool {
	return t.EndTime == nil
}

// StopTimerResult is returned by StopTimer after the budget recompute.
type StopTimerResult struct {
	TotalDuration int64
	Overtime      int64
	SavedTime     int64
}

// NewTask carries the fields accepted when creating a task.
type NewTask struct {
	ProjectID      int64
	Title          string
	EstimatedTime  int64
	AssignedUserID *int64
	StartDate      *time.Time
	EndDate        *time.Time
	Status         Status // defaults to pending
}

// TaskUpdate carries optional field changes for UpdateTask. Nil fields
// are left untouched.
type TaskUpdate struct {
	Title          *string
	EstimatedTime  *int64
	AssignedUserID *int64
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *Status
}

// TaskFilter is used to filter tasks in queries.
type TaskFilter struct {
	ProjectID      *int64
	AssignedUserID *int64
}
