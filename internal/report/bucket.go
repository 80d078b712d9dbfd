package report

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-day key used throughout the engine.
// Lexicographic order on these keys is chronological order.
const DateFormat = "2006-01-02"

// BucketIntervals sums each timer's seconds into the UTC calendar date
// of its start. An interval that crosses midnight is attributed whole
// to its start date, never split. A running timer contributes
// floor(now-start) to its start date.
func BucketIntervals(timers []TimerRecord, now time.Time) map[string]int64 {
	buckets := make(map[string]int64)
	for _, tr := range timers {
		day := tr.StartTime.UTC().Format(DateFormat)
		switch {
		case tr.Duration != nil:
			buckets[day] += *tr.Duration
		case tr.EndTime == nil:
			if delta := int64(now.UTC().Sub(tr.StartTime.UTC()).Seconds()); delta > 0 {
				buckets[day] += delta
			}
		}
	}
	return buckets
}

// EnumerateDateRange returns the inclusive ordered UTC dates from
// start's calendar date to end's calendar date, discarding time of day.
// An end date before the start date is a ValidationError.
func EnumerateDateRange(start, end time.Time) ([]string, error) {
	from := truncateDay(start)
	to := truncateDay(end)
	if to.Before(from) {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("end date %s before start date %s",
				to.Format(DateFormat), from.Format(DateFormat)),
		}
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateFormat))
	}
	return dates, nil
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
