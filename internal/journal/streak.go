package journal

import (
	"context"
	"sort"
	"time"
)

// streakEventBound caps how many recent events streak computation reads.
const streakEventBound = 1000

// ComputeStreak counts consecutive calendar days ending today or yesterday
// with at least one try, across all items combined. A fully skipped day
// breaks the streak.
func (j *Journal) ComputeStreak(ctx context.Context) (int, error) {
	events, err := j.store.Events(ctx)
	if err != nil {
		return 0, err
	}

	sort.SliceStable(events, func(a, b int) bool {
		return events[a].TriedAt.After(events[b].TriedAt)
	})
	if len(events) > streakEventBound {
		events = events[:streakEventBound]
	}

	dates := make([]time.Time, 0, len(events))
	for _, ev := range events {
		dates = append(dates, ev.TriedAt)
	}
	return streakFrom(dates, j.now()), nil
}

// streakFrom computes the streak over the given try timestamps as of now.
// Days are UTC calendar days, matching the noon-UTC storage convention.
func streakFrom(tries []time.Time, now time.Time) int {
	if len(tries) == 0 {
		return 0
	}

	// De-duplicate to active calendar days.
	active := make(map[time.Time]bool, len(tries))
	var latest time.Time
	for _, t := range tries {
		day := dayUTC(t)
		active[day] = true
		if day.After(latest) {
			latest = day
		}
	}

	today := dayUTC(now)
	if today.Sub(latest) > 24*time.Hour {
		// A whole day was skipped.
		return 0
	}

	streak := 0
	for day := latest; active[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

func dayUTC(t time.Time) time.Time {
	d := t.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
