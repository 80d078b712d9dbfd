package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/clockwise/internal/report"
)

const taskColumns = `id, project_id, assigned_user_id, title, estimated_time,
	start_date, end_date, status, overtime, saved_time, created_at, updated_at`

func (s *Store) CreateTask(ctx context.Context, nt NewTask) (*Task, error) {
	if strings.TrimSpace(nt.Title) == "" {
		return nil, fmt.Errorf("task title is required: %w", ErrInvalid)
	}
	if nt.EstimatedTime < 0 {
		return nil, fmt.Errorf("estimated time must not be negative: %w", ErrInvalid)
	}
	status := nt.Status
	if status == "" {
		status = StatusPending
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}

	now := fmtTime(time.Now())
	// A fresh task has consumed nothing, so its whole budget is saved.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (project_id, assigned_user_id, title, estimated_time,
			start_date, end_date, status, saved_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nt.ProjectID, nt.AssignedUserID, nt.Title, nt.EstimatedTime,
		nullTimeArg(nt.StartDate), nullTimeArg(nt.EndDate), string(status),
		nt.EstimatedTime, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(ctx, id)
}

func (s *Store) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	var args []any
	if f.ProjectID != nil {
		query += ` AND project_id = ?`
		args = append(args, *f.ProjectID)
	}
	if f.AssignedUserID != nil {
		query += ` AND assigned_user_id = ?`
		args = append(args, *f.AssignedUserID)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTask applies the non-nil fields of u and recomputes the cached
// overtime/saved time against the task's closed timers, since an
// estimate change shifts both.
func (s *Store) UpdateTask(ctx context.Context, id int64, u TaskUpdate) (*Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" {
			return nil, fmt.Errorf("task title is required: %w", ErrInvalid)
		}
		t.Title = *u.Title
	}
	if u.EstimatedTime != nil {
		if *u.EstimatedTime < 0 {
			return nil, fmt.Errorf("estimated time must not be negative: %w", ErrInvalid)
		}
		t.EstimatedTime = *u.EstimatedTime
	}
	if u.AssignedUserID != nil {
		t.AssignedUserID = u.AssignedUserID
	}
	if u.StartDate != nil {
		t.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		t.EndDate = u.EndDate
	}
	if u.Status != nil {
		if _, err := ParseStatus(string(*u.Status)); err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
		}
		t.Status = *u.Status
	}

	total, err := s.closedDuration(ctx, id)
	if err != nil {
		return nil, err
	}
	overtime, saved := report.Recompute(t.EstimatedTime, total)

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, estimated_time = ?, assigned_user_id = ?,
			start_date = ?, end_date = ?, status = ?, overtime = ?, saved_time = ?,
			updated_at = ?
		WHERE id = ?`,
		t.Title, t.EstimatedTime, t.AssignedUserID,
		nullTimeArg(t.StartDate), nullTimeArg(t.EndDate), string(t.Status),
		overtime, saved, fmtTime(time.Now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	return s.GetTask(ctx, id)
}

func (s *Store) UpdateTaskStatus(ctx context.Context, id int64, status Status) (*Task, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), fmtTime(time.Now()), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task status %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes the task; its timers go with it via the cascade.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	t := &Task{}
	var assignee sql.NullInt64
	var startDate, endDate sql.NullString
	var status, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.ProjectID, &assignee, &t.Title, &t.EstimatedTime,
		&startDate, &endDate, &status, &t.Overtime, &t.SavedTime, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if assignee.Valid {
		t.AssignedUserID = &assignee.Int64
	}
	t.StartDate = parseNullTime(startDate)
	t.EndDate = parseNullTime(endDate)
	t.Status = Status(status)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}
