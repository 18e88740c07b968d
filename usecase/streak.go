package usecase

import (
	"time"

	"main/model"
)

// NextStreak computes the streak counters after completing completionDate.
// A gap of at most one whole day to the most recent completion continues
// the chain; anything larger resets it to 1. Callers must reject a date
// already present in CompletedDates before calling; this function does not
// deduplicate.
func NextStreak(task *model.Task, completionDate string) (streaks, maxStreaks int) {
	if len(task.CompletedDates) == 0 {
		streaks = 1
	} else {
		last := task.CompletedDates[len(task.CompletedDates)-1]
		if DaysBetween(last, completionDate) <= 1 {
			streaks = task.Streaks + 1
		} else {
			streaks = 1
		}
	}

	maxStreaks = task.MaxStreaks
	if streaks > maxStreaks {
		maxStreaks = streaks
	}
	return streaks, maxStreaks
}

// DaysBetween returns the whole-day difference b - a for YYYY-MM-DD strings.
// Unparseable input counts as a broken chain (large positive gap).
func DaysBetween(a, b string) int {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return 1 << 20
	}
	return int(tb.Sub(ta).Hours() / 24)
}
