package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/clockwise/internal/report"
)

type dayWiseExport struct {
	ExportedAt string                `json:"exported_at"`
	Days       int                   `json:"days"`
	Entries    []report.DayWiseEntry `json:"entries"`
}

// DayWiseToJSON writes a day-wise report with an export timestamp
// header, matching the CSV exporter's scope.
func DayWiseToJSON(entries []report.DayWiseEntry, path string) error {
	export := dayWiseExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Days:       len(entries),
		Entries:    entries,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// UserReportToJSON writes the user-scoped projects+dayWise view.
func UserReportToJSON(rep *report.UserReport, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// AdminReportToJSON writes the admin-wide per-user view.
func AdminReportToJSON(reps []report.AdminUserReport, path string) error {
	data, err := json.MarshalIndent(reps, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
