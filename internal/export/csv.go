package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/clockwise/internal/report"
)

// DayWiseToCSV writes one row per task per day; days without any worked
// task still get a row so the range stays visible in the output.
func DayWiseToCSV(entries []report.DayWiseEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{"Date", "Day Status", "Day Total (s)", "Day Total",
		"Task ID", "Task", "Worked (s)", "Estimated (s)", "Saved (s)", "Overtime (s)", "Task Status"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		if len(e.Tasks) == 0 {
			row := []string{e.Date, e.Status, "0", formatDuration(0), "", "", "", "", "", "", ""}
			if err := w.Write(row); err != nil {
				return err
			}
			continue
		}
		for _, t := range e.Tasks {
			row := []string{
				e.Date,
				e.Status,
				fmt.Sprintf("%d", e.Time),
				formatDuration(e.Time),
				fmt.Sprintf("%d", t.TaskID),
				t.Title,
				fmt.Sprintf("%d", t.Time),
				fmt.Sprintf("%d", t.EstimatedTime),
				fmt.Sprintf("%d", t.SavedTime),
				fmt.Sprintf("%d", t.Overtime),
				t.Status,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
