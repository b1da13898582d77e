package journal

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tastelog/tastelog/internal/recordstore"
)

// EventWithItem is an event joined with its item's display fields.
type EventWithItem struct {
	recordstore.Event
	Title    string `json:"title"`
	Category string `json:"category"`
}

// RecordEvent logs a try of the item stamped at the current moment.
// LogTry is the date-normalizing entry point the application uses.
func (j *Journal) RecordEvent(ctx context.Context, itemID int64) (int64, error) {
	return j.appendEvent(ctx, itemID, j.now().UTC())
}

// appendEvent assigns an event ID and appends the event. The item must
// exist at creation time.
func (j *Journal) appendEvent(ctx context.Context, itemID int64, triedAt time.Time) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	items, err := j.store.Items(ctx)
	if err != nil {
		return 0, err
	}
	exists := false
	for _, it := range items {
		if it.ID == itemID {
			exists = true
			break
		}
	}
	if !exists {
		return 0, ErrNotFound
	}

	events, err := j.store.Events(ctx)
	if err != nil {
		return 0, err
	}

	id, err := j.store.NextEventID(ctx)
	if err != nil {
		return 0, fmt.Errorf("record event: %w", err)
	}

	events = append(events, recordstore.Event{
		ID:      id,
		ItemID:  itemID,
		TriedAt: triedAt,
	})

	if err := j.store.SaveEvents(ctx, events); err != nil {
		return 0, fmt.Errorf("record event: %w", err)
	}
	return id, nil
}

// EventsForItem returns the item's events, most recent first.
func (j *Journal) EventsForItem(ctx context.Context, itemID int64) ([]recordstore.Event, error) {
	events, err := j.store.Events(ctx)
	if err != nil {
		return nil, err
	}

	filtered := events[:0]
	for _, ev := range events {
		if ev.ItemID == itemID {
			filtered = append(filtered, ev)
		}
	}
	sort.SliceStable(filtered, func(a, b int) bool {
		return filtered[a].TriedAt.After(filtered[b].TriedAt)
	})
	return filtered, nil
}

// RecentEvents joins the most recent events with their items' title and
// category, truncated to limit. A deleted item shows as "Unknown".
func (j *Journal) RecentEvents(ctx context.Context, limit int) ([]EventWithItem, error) {
	if limit <= 0 {
		limit = 10
	}

	events, err := j.store.Events(ctx)
	if err != nil {
		return nil, err
	}
	items, err := j.store.Items(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]recordstore.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	joined := make([]EventWithItem, 0, len(events))
	for _, ev := range events {
		out := EventWithItem{Event: ev, Title: "Unknown", Category: "Unknown"}
		if it, ok := byID[ev.ItemID]; ok {
			out.Title = it.Title
			out.Category = it.Category
		}
		joined = append(joined, out)
	}

	sort.SliceStable(joined, func(a, b int) bool {
		return joined[a].TriedAt.After(joined[b].TriedAt)
	})
	if len(joined) > limit {
		joined = joined[:limit]
	}
	return joined, nil
}

// noonUTC pins t to 12:00:00 UTC on its UTC calendar date, so date-only
// comparisons stay stable across caller timezones.
func noonUTC(t time.Time) time.Time {
	d := t.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}
