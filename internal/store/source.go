package store

import (
	"context"
	"errors"

	"github.com/sadopc/clockwise/internal/report"
)

// Store feeds the report engine directly.
var _ report.Source = (*Store)(nil)

func (s *Store) User(ctx context.Context, id int64) (*report.UserRecord, error) {
	u, err := s.GetUser(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, &report.NotFoundError{Resource: "user", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &report.UserRecord{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}, nil
}

func (s *Store) Users(ctx context.Context) ([]report.UserRecord, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]report.UserRecord, 0, len(users))
	for _, u := range users {
		records = append(records, report.UserRecord{
			ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role,
		})
	}
	return records, nil
}

func (s *Store) Project(ctx context.Context, id int64) (*report.ProjectRecord, error) {
	p, err := s.GetProject(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, &report.NotFoundError{Resource: "project", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &report.ProjectRecord{ID: p.ID, Name: p.Name, Description: p.Description}, nil
}

func (s *Store) ProjectTasks(ctx context.Context, projectID int64, assigneeID *int64) ([]report.TaskRecord, error) {
	tasks, err := s.ListTasks(ctx, TaskFilter{ProjectID: &projectID, AssignedUserID: assigneeID})
	if err != nil {
		return nil, err
	}
	return taskRecords(tasks), nil
}

func (s *Store) UserTasks(ctx context.Context, userID int64) ([]report.TaskRecord, error) {
	tasks, err := s.ListTasks(ctx, TaskFilter{AssignedUserID: &userID})
	if err != nil {
		return nil, err
	}
	return taskRecords(tasks), nil
}

func (s *Store) TaskTimers(ctx context.Context, taskID int64) ([]report.TimerRecord, error) {
	timers, err := s.ListTimers(ctx, taskID)
	if err != nil {
		return nil, err
	}
	records := make([]report.TimerRecord, 0, len(timers))
	for _, t := range timers {
		records = append(records, report.TimerRecord{
			ID:        t.ID,
			TaskID:    t.TaskID,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
			Duration:  t.Duration,
		})
	}
	return records, nil
}

func taskRecords(tasks []Task) []report.TaskRecord {
	records := make([]report.TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, report.TaskRecord{
			ID:             t.ID,
			ProjectID:      t.ProjectID,
			AssignedUserID: t.AssignedUserID,
			Title:          t.Title,
			EstimatedTime:  t.EstimatedTime,
			StartDate:      t.StartDate,
			EndDate:        t.EndDate,
			Status:         string(t.Status),
		})
	}
	return records
}
