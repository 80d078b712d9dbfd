package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/sadopc/clockwise/internal/report"
)

func sampleEntries() []report.DayWiseEntry {
	return []report.DayWiseEntry{
		{
			Date:   "2024-03-01",
			Time:   2700,
			Status: report.StatusWorked,
			Tasks: []report.TaskDayEntry{
				{TaskID: 100, Title: "build pipeline", Time: 1800, EstimatedTime: 3600, SavedTime: 1800, Overtime: 0, Status: "in_progress"},
				{TaskID: 101, Title: `review "quotes" and, commas`, Time: 900, EstimatedTime: 0, SavedTime: 0, Overtime: 0, Status: "code_review"},
			},
		},
		{
			Date:   "2024-03-02",
			Time:   0,
			Status: report.StatusNotWorked,
			Tasks:  []report.TaskDayEntry{},
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestDayWiseToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	if err := DayWiseToCSV(sampleEntries(), path); err != nil {
		t.Fatalf("DayWiseToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 task rows + 1 empty-day row
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Date", "Day Status", "Day Total (s)", "Day Total",
		"Task ID", "Task", "Worked (s)", "Estimated (s)", "Saved (s)", "Overtime (s)", "Task Status"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "2024-03-01" {
		t.Fatalf("Date = %q, want 2024-03-01", row[0])
	}
	if row[1] != "Worked" {
		t.Fatalf("Day Status = %q, want Worked", row[1])
	}
	if row[3] != "00:45:00" {
		t.Fatalf("Day Total = %q, want 00:45:00", row[3])
	}
	if row[5] != "build pipeline" {
		t.Fatalf("Task = %q, want 'build pipeline'", row[5])
	}
	if row[6] != "1800" || row[8] != "1800" || row[9] != "0" {
		t.Fatalf("unexpected task figures: %v", row)
	}

	// Days without work still show up, with the task columns blank.
	empty := records[3]
	if empty[0] != "2024-03-02" || empty[1] != "Not Worked" {
		t.Fatalf("empty day row = %v", empty)
	}
	if empty[4] != "" || empty[5] != "" {
		t.Fatalf("empty day should have blank task columns: %v", empty)
	}
}

func TestDayWiseToCSVSpecialCharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := DayWiseToCSV(sampleEntries(), path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV should stay valid with special chars: %v", err)
	}
	if records[2][5] != `review "quotes" and, commas` {
		t.Fatalf("title mangled: %q", records[2][5])
	}
}

func TestDayWiseToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := DayWiseToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestDayWiseToCSVBadPath(t *testing.T) {
	if err := DayWiseToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestDayWiseToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	if err := DayWiseToJSON(sampleEntries(), path); err != nil {
		t.Fatalf("DayWiseToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result dayWiseExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Days != 2 {
		t.Fatalf("days = %d, want 2", result.Days)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	e := result.Entries[0]
	if e.Date != "2024-03-01" || e.Time != 2700 {
		t.Fatalf("unexpected first entry: %+v", e)
	}
	if len(e.Tasks) != 2 || e.Tasks[0].SavedTime != 1800 {
		t.Fatalf("unexpected tasks: %+v", e.Tasks)
	}

	// Pretty-printed output
	if !strings.Contains(string(data), "\n") || !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestDayWiseToJSONBadPath(t *testing.T) {
	if err := DayWiseToJSON(nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestAdminReportToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.json")

	reps := []report.AdminUserReport{
		{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
			Projects: []report.ProjectWithTasks{},
			DayWise:  sampleEntries(),
		},
	}
	if err := AdminReportToJSON(reps, path); err != nil {
		t.Fatalf("AdminReportToJSON: %v", err)
	}

	data, _ := os.ReadFile(path)
	var got []report.AdminUserReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Fatalf("unexpected round trip: %+v", got)
	}
	if len(got[0].DayWise) != 2 {
		t.Fatalf("dayWise = %d, want 2", len(got[0].DayWise))
	}
}

// The user report JSON shape is consumed by external tooling, so the
// exact bytes are pinned by a golden file.
func TestUserReportToJSONGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.json")

	rep := &report.UserReport{
		Projects: []report.ProjectWithTasks{
			{
				ID:          10,
				Name:        "Apollo",
				Description: "launch tooling",
				Tasks: []report.TaskSummary{
					{ID: 100, Title: "build pipeline", Time: 5400, EstimatedTime: 3600, SavedTime: 1800, Overtime: 1800, Status: "in_progress"},
				},
			},
		},
		DayWise: []report.DayWiseEntry{
			{
				Date:   "2024-03-01",
				Time:   1800,
				Status: report.StatusWorked,
				Tasks: []report.TaskDayEntry{
					{TaskID: 100, Title: "build pipeline", Time: 1800, EstimatedTime: 3600, SavedTime: 1800, Overtime: 0, Status: "in_progress"},
				},
			},
			{
				Date:   "2024-03-02",
				Time:   0,
				Status: report.StatusNotWorked,
				Tasks:  []report.TaskDayEntry{},
			},
			{
				Date:   "2024-03-03",
				Time:   3600,
				Status: report.StatusWorked,
				Tasks: []report.TaskDayEntry{
					{TaskID: 100, Title: "build pipeline", Time: 3600, EstimatedTime: 3600, SavedTime: 0, Overtime: 1800, Status: "in_progress"},
				},
			},
		},
	}

	if err := UserReportToJSON(rep, path); err != nil {
		t.Fatalf("UserReportToJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "user_report", data)
}

// ============================================================
// formatDuration
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{1, "00:00:01"},
		{60, "00:01:00"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{90061, "25:01:01"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.secs)
		if got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
