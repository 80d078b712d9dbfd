package report

// Day status values as the surrounding system expects them.
const (
	StatusWorked    = "Worked"
	StatusNotWorked = "Not Worked"
)

// TaskDayEntry is one task's consumption on one calendar day.
type TaskDayEntry struct {
	TaskID        int64  `json:"taskId"`
	Title         string `json:"title"`
	Time          int64  `json:"time"`
	EstimatedTime int64  `json:"estimatedTime"`
	SavedTime     int64  `json:"savedTime"`
	Overtime      int64  `json:"overtime"`
	Status        string `json:"status"`
}

// UserDayEntry is one user's slice of a project-scoped day.
type UserDayEntry struct {
	UserID int64          `json:"userId"`
	Time   int64          `json:"time"`
	Status string         `json:"status"`
	Tasks  []TaskDayEntry `json:"tasks"`
}

// DayWiseEntry is one calendar day of a report. Users is populated only
// for project-scoped reports.
type DayWiseEntry struct {
	Date   string         `json:"date"`
	Time   int64          `json:"time"`
	Status string         `json:"status"`
	Tasks  []TaskDayEntry `json:"tasks"`
	Users  []UserDayEntry `json:"users,omitempty"`
}

// TaskSummary totals one task over the report range. EstimatedTime is
// counted once, not once per day the task shows up.
type TaskSummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Time          int64  `json:"time"`
	EstimatedTime int64  `json:"estimatedTime"`
	SavedTime     int64  `json:"savedTime"`
	Overtime      int64  `json:"overtime"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	Status        string `json:"status"`
}

// ProjectWithTasks groups a user's task summaries under their project.
type ProjectWithTasks struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Tasks       []TaskSummary `json:"tasks"`
}

// UserReport is the user-scoped, multi-project view.
type UserReport struct {
	Projects []ProjectWithTasks `json:"projects"`
	DayWise  []DayWiseEntry     `json:"dayWise"`
}

// AdminUserReport is one user's independent entry in the admin-wide
// view. Entries never share sub-objects with each other.
type AdminUserReport struct {
	ID       int64              `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
	Projects []ProjectWithTasks `json:"projects"`
	DayWise  []DayWiseEntry     `json:"dayWise"`
}

// dayTasks collects the freshly built task entries of one scope unit
// for one date, omitting tasks that saw no work that day.
func dayTasks(series []*taskSeries, date string) ([]TaskDayEntry, int64) {
	tasks := []TaskDayEntry{}
	var total int64
	for _, s := range series {
		if e, ok := s.dayEntry(date); ok {
			tasks = append(tasks, e)
			total += e.Time
		}
	}
	return tasks, total
}

// dayWiseEntries assembles one scope unit's day entries over the range.
func dayWiseEntries(series []*taskSeries, dates []string) []DayWiseEntry {
	entries := make([]DayWiseEntry, 0, len(dates))
	for _, d := range dates {
		tasks, total := dayTasks(series, d)
		entries = append(entries, DayWiseEntry{
			Date:   d,
			Time:   total,
			Status: dayStatus(total),
			Tasks:  tasks,
		})
	}
	return entries
}

func dayStatus(worked int64) string {
	if worked > 0 {
		return StatusWorked
	}
	return StatusNotWorked
}

// summarize totals one task over the report's dates.
func (s *taskSeries) summarize(dates []string) TaskSummary {
	var worked, overtime, saved int64
	for _, d := range dates {
		if e, ok := s.dayEntry(d); ok {
			worked += e.Time
			overtime += e.Overtime
			saved += e.SavedTime
		}
	}
	sum := TaskSummary{
		ID:            s.task.ID,
		Title:         s.task.Title,
		Time:          worked,
		EstimatedTime: s.task.EstimatedTime,
		SavedTime:     saved,
		Overtime:      overtime,
		Status:        s.task.Status,
	}
	if s.task.StartDate != nil {
		sum.StartDate = s.task.StartDate.UTC().Format(DateFormat)
	}
	if s.task.EndDate != nil {
		sum.EndDate = s.task.EndDate.UTC().Format(DateFormat)
	}
	return sum
}
