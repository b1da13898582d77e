package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int, now time.Time) time.Time {
	return noonUTC(now.AddDate(0, 0, offset))
}

func TestStreakFrom(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		tries []time.Time
		want  int
	}{
		{"no events", nil, 0},
		{"one event today", []time.Time{day(0, now)}, 1},
		{"today yesterday daybefore", []time.Time{day(0, now), day(-1, now), day(-2, now)}, 3},
		{"today and three days ago", []time.Time{day(0, now), day(-3, now)}, 1},
		{"ends yesterday", []time.Time{day(-1, now), day(-2, now)}, 2},
		{"broken two days ago", []time.Time{day(-2, now), day(-3, now)}, 0},
		{"duplicate days count once", []time.Time{day(0, now), day(0, now), day(-1, now)}, 2},
		{"gap in the middle", []time.Time{day(0, now), day(-1, now), day(-3, now), day(-4, now)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, streakFrom(tt.tries, now))
		})
	}
}

func TestComputeStreak(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	// Pin the clock; the journal's now() drives both LogTry and "today".
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return now }

	id, err := j.AddItem(ctx, ItemFields{Title: "Espresso", Category: "Beverages"})
	require.NoError(t, err)
	other, err := j.AddItem(ctx, ItemFields{Title: "Croissant", Category: "Grains"})
	require.NoError(t, err)

	// Streak days may come from different items.
	_, err = j.LogTryAt(ctx, id, now)
	require.NoError(t, err)
	_, err = j.LogTryAt(ctx, other, now.AddDate(0, 0, -1))
	require.NoError(t, err)
	_, err = j.LogTryAt(ctx, id, now.AddDate(0, 0, -2))
	require.NoError(t, err)

	streak, err := j.ComputeStreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestComputeStreak_NoEvents(t *testing.T) {
	j := newTestJournal(t)

	streak, err := j.ComputeStreak(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}
