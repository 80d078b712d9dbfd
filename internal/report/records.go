// Package report turns raw start/stop timer intervals into calendar-day
// utilization figures: worked time, overtime, and saved time, bucketed
// per task per UTC date and rolled up per user, per project, or across
// every user.
//
// The package is read-only. It pulls records through the Source
// interface, rebuilds all derived state per request, and shares nothing
// between requests or between scope units of one request.
package report

import (
	"context"
	"time"
)

// TaskRecord is the task shape the engine consumes.
type TaskRecord struct {
	ID             int64
	ProjectID      int64
	AssignedUserID *int64
	Title          string
	EstimatedTime  int64 // seconds; <= 0 disables budget tracking
	StartDate      *time.Time
	EndDate        *time.Time
	Status         string
}

// TimerRecord is one work session. EndTime and Duration are absent
// while the session is running.
type TimerRecord struct {
	ID        int64
	TaskID    int64
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64 // seconds
}

type UserRecord struct {
	ID       int64
	Username string
	Email    string
	Role     string
}

type ProjectRecord struct {
	ID          int64
	Name        string
	Description string
}

// Source supplies the records a report needs. Every method honors
// context cancellation; a missing user or project is reported as a
// *NotFoundError so the aggregator can decide between failing the
// request and skipping the reference.
type Source interface {
	User(ctx context.Context, id int64) (*UserRecord, error)
	Users(ctx context.Context) ([]UserRecord, error)
	Project(ctx context.Context, id int64) (*ProjectRecord, error)

	// ProjectTasks returns the tasks of a project, optionally narrowed
	// to one assignee.
	ProjectTasks(ctx context.Context, projectID int64, assigneeID *int64) ([]TaskRecord, error)

	// UserTasks returns every task assigned to the user, across all
	// projects.
	UserTasks(ctx context.Context, userID int64) ([]TaskRecord, error)

	// TaskTimers returns the task's full timer history in start order.
	TaskTimers(ctx context.Context, taskID int64) ([]TimerRecord, error)
}
