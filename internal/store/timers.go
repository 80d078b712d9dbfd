package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/clockwise/internal/report"
)

// StartTimer opens a work session against the task. The one-running-
// timer-per-task invariant is carried by the partial unique index on
// timers, so a concurrent second start fails its insert instead of
// slipping past a stale read.
func (s *Store) StartTimer(ctx context.Context, taskID int64) (*Timer, error) {
	// Surface a clean not-found for unknown tasks instead of an FK error.
	if _, err := s.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	now := fmtTime(time.Now())
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO timers (task_id, start_time, created_at) VALUES (?, ?, ?)`,
		taskID, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("start timer for task %d: %w", taskID, ErrTimerRunning)
		}
		return nil, fmt.Errorf("start timer for task %d: %w", taskID, err)
	}
	id, _ := res.LastInsertId()
	return s.GetTimer(ctx, id)
}

// StopTimer closes the task's running timer, recomputes the task's
// overtime/saved time against its total closed duration, and persists
// both on the task.
func (s *Store) StopTimer(ctx context.Context, taskID int64) (*StopTimerResult, error) {
	var id int64
	var startStr string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, start_time FROM timers WHERE task_id = ? AND end_time IS NULL`,
		taskID,
	).Scan(&id, &startStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrNoRunningTimer)
	}
	if err != nil {
		return nil, fmt.Errorf("stop timer for task %d: %w", taskID, err)
	}

	now := time.Now().UTC()
	duration := int64(now.Sub(parseTime(startStr)).Seconds())
	if duration < 0 {
		duration = 0
	}

	// Conditional update: if a concurrent stop already closed the row,
	// zero rows are affected and we report no running timer.
	res, err := s.db.ExecContext(ctx,
		`UPDATE timers SET end_time = ?, duration = ? WHERE id = ? AND end_time IS NULL`,
		fmtTime(now), duration, id,
	)
	if err != nil {
		return nil, fmt.Errorf("stop timer for task %d: %w", taskID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrNoRunningTimer)
	}

	total, err := s.closedDuration(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	overtime, saved := report.Recompute(task.EstimatedTime, total)
	if err := s.setTaskBudget(ctx, taskID, overtime, saved); err != nil {
		return nil, err
	}

	return &StopTimerResult{TotalDuration: total, Overtime: overtime, SavedTime: saved}, nil
}

// AccumulatedDuration sums the closed timers of the task, plus the live
// delta of the running timer if one exists, as of asOf.
func (s *Store) AccumulatedDuration(ctx context.Context, taskID int64, asOf time.Time) (int64, error) {
	total, err := s.closedDuration(ctx, taskID)
	if err != nil {
		return 0, err
	}

	var startStr sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT start_time FROM timers WHERE task_id = ? AND end_time IS NULL`,
		taskID,
	).Scan(&startStr)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("accumulated duration for task %d: %w", taskID, err)
	}
	if startStr.Valid {
		delta := int64(asOf.UTC().Sub(parseTime(startStr.String)).Seconds())
		if delta > 0 {
			total += delta
		}
	}
	return total, nil
}

func (s *Store) GetTimer(ctx context.Context, id int64) (*Timer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, task_id, start_time, end_time, duration, created_at FROM timers WHERE id = ?`, id)
	t, err := scanTimer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("timer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get timer %d: %w", id, err)
	}
	return t, nil
}

// RunningTimer returns the task's open timer, or nil if there is none.
func (s *Store) RunningTimer(ctx context.Context, taskID int64) (*Timer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, task_id, start_time, end_time, duration, created_at
		 FROM timers WHERE task_id = ? AND end_time IS NULL`, taskID)
	t, err := scanTimer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("running timer for task %d: %w", taskID, err)
	}
	return t, nil
}

func (s *Store) ListTimers(ctx context.Context, taskID int64) ([]Timer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, start_time, end_time, duration, created_at
		 FROM timers WHERE task_id = ? ORDER BY start_time, id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list timers for task %d: %w", taskID, err)
	}
	defer rows.Close()

	var timers []Timer
	for rows.Next() {
		t, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		timers = append(timers, *t)
	}
	return timers, rows.Err()
}

func (s *Store) closedDuration(ctx context.Context, taskID int64) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM timers WHERE task_id = ? AND end_time IS NOT NULL`,
		taskID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("closed duration for task %d: %w", taskID, err)
	}
	return total.Int64, nil
}

func (s *Store) setTaskBudget(ctx context.Context, taskID, overtime, saved int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET overtime = ?, saved_time = ?, updated_at = ? WHERE id = ?`,
		overtime, saved, fmtTime(time.Now()), taskID,
	)
	if err != nil {
		return fmt.Errorf("set task %d budget: %w", taskID, err)
	}
	return nil
}

func scanTimer(row rowScanner) (*Timer, error) {
	t := &Timer{}
	var startTime, createdAt string
	var endTime sql.NullString
	var duration sql.NullInt64
	if err := row.Scan(&t.ID, &t.TaskID, &startTime, &endTime, &duration, &createdAt); err != nil {
		return nil, err
	}
	t.StartTime = parseTime(startTime)
	t.EndTime = parseNullTime(endTime)
	if duration.Valid {
		t.Duration = &duration.Int64
	}
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}
