package report

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Aggregator composes bucketing and budget consumption into day-wise
// reports over a scope and date range. It holds no mutable state of its
// own; every call rebuilds its derived data from the Source.
type Aggregator struct {
	src Source
	log *slog.Logger
	now func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger used for soft skips and request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.log = l }
}

// WithClock overrides the time source. Running timers contribute their
// live delta relative to this clock.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

func NewAggregator(src Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		src: src,
		log: slog.Default(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// taskSeries is one task's full bucketed history plus the cumulative
// sums needed to draw its budget down day by day. Days are kept sorted
// ascending so that each day's consumption builds on the prior days.
type taskSeries struct {
	task    TaskRecord
	buckets map[string]int64
	days    []string // sorted ascending, full history
	cum     []int64  // cum[i] = worked seconds over days[0..i]
}

func newTaskSeries(task TaskRecord, timers []TimerRecord, now time.Time) *taskSeries {
	buckets := BucketIntervals(timers, now)
	days := make([]string, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	sort.Strings(days)

	cum := make([]int64, len(days))
	var running int64
	for i, d := range days {
		running += buckets[d]
		cum[i] = running
	}
	return &taskSeries{task: task, buckets: buckets, days: days, cum: cum}
}

// workedBefore returns the seconds worked on the task over every
// bucketed day strictly earlier than date, across the task's whole
// history, not just the queried range.
func (s *taskSeries) workedBefore(date string) int64 {
	i := sort.SearchStrings(s.days, date)
	if i == 0 {
		return 0
	}
	return s.cum[i-1]
}

// dayEntry computes the task's consumption figures for one date. The
// second return is false when the task saw no work that day and must be
// left out of the day's task list.
func (s *taskSeries) dayEntry(date string) (TaskDayEntry, bool) {
	worked := s.buckets[date]
	if worked == 0 {
		return TaskDayEntry{}, false
	}

	var overtime, saved int64
	if est := s.task.EstimatedTime; est > 0 {
		before := s.workedBefore(date)
		remaining := est - before
		if remaining < 0 {
			remaining = 0
		}
		overtime = worked - remaining
		if overtime < 0 {
			overtime = 0
		}
		saved = est - (before + worked)
		if saved < 0 {
			saved = 0
		}
	}

	return TaskDayEntry{
		TaskID:        s.task.ID,
		Title:         s.task.Title,
		Time:          worked,
		EstimatedTime: s.task.EstimatedTime,
		SavedTime:     saved,
		Overtime:      overtime,
		Status:        s.task.Status,
	}, true
}

// buildSeries fetches each task's full timer history and buckets it.
func (a *Aggregator) buildSeries(ctx context.Context, tasks []TaskRecord, now time.Time) ([]*taskSeries, error) {
	series := make([]*taskSeries, 0, len(tasks))
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		timers, err := a.src.TaskTimers(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		series = append(series, newTaskSeries(task, timers, now))
	}
	return series, nil
}

// ProjectDayWise reports one project's day-wise utilization for the
// given users over the inclusive date range. Unknown users in userIDs
// are skipped; an unknown project fails the request.
func (a *Aggregator) ProjectDayWise(ctx context.Context, projectID int64, userIDs []int64, start, end time.Time) ([]DayWiseEntry, error) {
	dates, err := EnumerateDateRange(start, end)
	if err != nil {
		return nil, err
	}
	log := a.log.With("request_id", uuid.NewString(), "project_id", projectID)

	if _, err := a.src.Project(ctx, projectID); err != nil {
		return nil, err
	}

	now := a.now()
	type userUnit struct {
		id     int64
		series []*taskSeries
	}
	var units []userUnit
	for _, uid := range userIDs {
		if _, err := a.src.User(ctx, uid); err != nil {
			if IsNotFound(err) {
				log.Warn("skipping unresolved user", "user_id", uid)
				continue
			}
			return nil, err
		}
		assignee := uid
		tasks, err := a.src.ProjectTasks(ctx, projectID, &assignee)
		if err != nil {
			return nil, err
		}
		series, err := a.buildSeries(ctx, tasks, now)
		if err != nil {
			return nil, err
		}
		units = append(units, userUnit{id: uid, series: series})
	}

	entries := make([]DayWiseEntry, 0, len(dates))
	for _, d := range dates {
		users := make([]UserDayEntry, 0, len(units))
		allTasks := []TaskDayEntry{}
		var total int64
		for _, u := range units {
			tasks, worked := dayTasks(u.series, d)
			users = append(users, UserDayEntry{
				UserID: u.id,
				Time:   worked,
				Status: dayStatus(worked),
				Tasks:  tasks,
			})
			allTasks = append(allTasks, tasks...)
			total += worked
		}
		entries = append(entries, DayWiseEntry{
			Date:   d,
			Time:   total,
			Status: dayStatus(total),
			Tasks:  allTasks,
			Users:  users,
		})
	}
	return entries, nil
}

// UserDayWise reports one user's utilization across all their projects.
// Tasks pointing at a project that no longer exists are dropped from
// the report rather than failing it.
func (a *Aggregator) UserDayWise(ctx context.Context, userID int64, start, end time.Time) (*UserReport, error) {
	dates, err := EnumerateDateRange(start, end)
	if err != nil {
		return nil, err
	}
	log := a.log.With("request_id", uuid.NewString(), "user_id", userID)

	if _, err := a.src.User(ctx, userID); err != nil {
		return nil, err
	}
	tasks, err := a.src.UserTasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := a.now()
	projects := []ProjectWithTasks{}
	projectIdx := make(map[int64]int)
	kept := []*taskSeries{}

	for _, task := range tasks {
		idx, ok := projectIdx[task.ProjectID]
		if !ok {
			proj, err := a.src.Project(ctx, task.ProjectID)
			if err != nil {
				if IsNotFound(err) {
					log.Warn("skipping task with unresolved project",
						"task_id", task.ID, "missing_project_id", task.ProjectID)
					projectIdx[task.ProjectID] = -1
					continue
				}
				return nil, err
			}
			idx = len(projects)
			projectIdx[task.ProjectID] = idx
			projects = append(projects, ProjectWithTasks{
				ID:          proj.ID,
				Name:        proj.Name,
				Description: proj.Description,
				Tasks:       []TaskSummary{},
			})
		}
		if idx < 0 {
			// Project already known to be gone.
			continue
		}
		timers, err := a.src.TaskTimers(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		s := newTaskSeries(task, timers, now)
		kept = append(kept, s)
		projects[idx].Tasks = append(projects[idx].Tasks, s.summarize(dates))
	}

	return &UserReport{
		Projects: projects,
		DayWise:  dayWiseEntries(kept, dates),
	}, nil
}

// AdminDayWise reports every user independently over the range. Users
// are aggregated concurrently since their scopes share nothing; each
// entry is built from scratch so mutating one user's entry cannot leak
// into another's.
func (a *Aggregator) AdminDayWise(ctx context.Context, start, end time.Time) ([]AdminUserReport, error) {
	if _, err := EnumerateDateRange(start, end); err != nil {
		return nil, err
	}
	log := a.log.With("request_id", uuid.NewString())

	users, err := a.src.Users(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*AdminUserReport, len(users))
	errs := make([]error, len(users))
	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i int, u UserRecord) {
			defer wg.Done()
			rep, err := a.UserDayWise(ctx, u.ID, start, end)
			if err != nil {
				if IsNotFound(err) {
					// User deleted between the listing and the fetch.
					log.Warn("skipping user removed mid-report", "user_id", u.ID)
					return
				}
				errs[i] = err
				cancel()
				return
			}
			results[i] = &AdminUserReport{
				ID:       u.ID,
				Username: u.Username,
				Email:    u.Email,
				Projects: rep.Projects,
				DayWise:  rep.DayWise,
			}
		}(i, u)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	out := make([]AdminUserReport, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
