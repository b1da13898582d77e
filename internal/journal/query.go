package journal

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tastelog/tastelog/internal/category"
	"github.com/tastelog/tastelog/internal/recordstore"
)

// Sort orders accepted by QueryItems.
const (
	SortNewest = "newest" // createdAt descending (default)
	SortOldest = "oldest" // createdAt ascending
	SortRating = "rating" // rating descending, missing rating counts as 0
	SortTitle  = "title"  // title ascending
)

// Query selects and orders items. Zero values mean "no filter" and the
// default newest-first order.
type Query struct {
	Search   string
	Category string
	Sort     string
}

// ItemDetail is an item together with its try history, ascending.
type ItemDetail struct {
	recordstore.Item
	Tries []time.Time `json:"tries"`
}

// QueryItems returns the items matching q, ordered per q.Sort. For a fixed
// store state the result is a pure function of q.
//
// When both Category and Search are set, the category filter applies first
// and the search term then matches title or brand.
func (j *Journal) QueryItems(ctx context.Context, q Query) ([]recordstore.Item, error) {
	var items []recordstore.Item
	var err error

	switch {
	case q.Category != "":
		want := strings.ToLower(category.Normalize(q.Category))
		items, err = j.ListItems(ctx)
		if err != nil {
			return nil, err
		}
		filtered := items[:0]
		for _, it := range items {
			if strings.ToLower(category.Normalize(it.Category)) == want {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	case q.Search != "":
		items, err = j.SearchItemsByTitle(ctx, q.Search)
		if err != nil {
			return nil, err
		}
	default:
		items, err = j.ListItems(ctx)
		if err != nil {
			return nil, err
		}
	}

	if q.Category != "" && q.Search != "" {
		lower := strings.ToLower(q.Search)
		filtered := items[:0]
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.Title), lower) ||
				strings.Contains(strings.ToLower(it.Brand), lower) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].CreatedAt.Before(items[b].CreatedAt)
		})
	case SortRating:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].Rating > items[b].Rating
		})
	case SortTitle:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].Title < items[b].Title
		})
	case SortNewest:
		fallthrough
	default:
		sortNewestFirst(items)
	}

	return items, nil
}

// GetItem returns the item with its try history attached, or (nil, nil)
// when no item has the given ID.
func (j *Journal) GetItem(ctx context.Context, id int64) (*ItemDetail, error) {
	items, err := j.store.Items(ctx)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it.ID != id {
			continue
		}
		events, err := j.EventsForItem(ctx, id)
		if err != nil {
			return nil, err
		}
		tries := make([]time.Time, 0, len(events))
		for _, ev := range events {
			tries = append(tries, ev.TriedAt)
		}
		sort.Slice(tries, func(a, b int) bool { return tries[a].Before(tries[b]) })
		return &ItemDetail{Item: it, Tries: tries}, nil
	}
	return nil, nil
}

// LogTry records a try of the item at the current moment, keeping only the
// calendar date (stored as noon UTC).
func (j *Journal) LogTry(ctx context.Context, itemID int64) (int64, error) {
	return j.appendEvent(ctx, itemID, noonUTC(j.now()))
}

// LogTryAt records a try on the UTC calendar date of at, normalized to
// noon UTC so the date survives timezone conversions.
func (j *Journal) LogTryAt(ctx context.Context, itemID int64, at time.Time) (int64, error) {
	return j.appendEvent(ctx, itemID, noonUTC(at))
}

// TryDates returns the item's try timestamps, ascending. A missing item
// yields an empty list.
func (j *Journal) TryDates(ctx context.Context, id int64) ([]time.Time, error) {
	detail, err := j.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return []time.Time{}, nil
	}
	return detail.Tries, nil
}

// LastTried returns the item's most recent try, or nil if never tried.
func (j *Journal) LastTried(ctx context.Context, id int64) (*time.Time, error) {
	dates, err := j.TryDates(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	last := dates[len(dates)-1]
	return &last, nil
}
