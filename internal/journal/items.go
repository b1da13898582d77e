package journal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tastelog/tastelog/internal/category"
	"github.com/tastelog/tastelog/internal/recordstore"
)

// InsertItem assigns a new ID, stamps creation timestamps, and appends the
// item to the collection. The category is stored as given; use AddItem for
// the normalizing entry point.
func (j *Journal) InsertItem(ctx context.Context, f ItemFields) (int64, error) {
	if !validTitle(f.Title) {
		return 0, fmt.Errorf("%w: title required", ErrInvalid)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	items, err := j.store.Items(ctx)
	if err != nil {
		return 0, err
	}

	id, err := j.store.NextItemID(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	now := j.now().UTC()
	items = append(items, recordstore.Item{
		ID:        id,
		Title:     f.Title,
		Brand:     f.Brand,
		Category:  f.Category,
		Rating:    f.Rating,
		PhotoURI:  f.PhotoURI,
		Notes:     f.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err := j.store.SaveItems(ctx, items); err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

// AddItem normalizes the category and inserts the item. This is the entry
// point the application uses.
func (j *Journal) AddItem(ctx context.Context, f ItemFields) (int64, error) {
	f.Category = category.Normalize(f.Category)
	return j.InsertItem(ctx, f)
}

// AddItemWithFirstTry inserts the item and logs its first try in one call.
func (j *Journal) AddItemWithFirstTry(ctx context.Context, f ItemFields, triedAt time.Time) (int64, error) {
	id, err := j.AddItem(ctx, f)
	if err != nil {
		return 0, err
	}
	if _, err := j.LogTryAt(ctx, id, triedAt); err != nil {
		return 0, err
	}
	return id, nil
}

// ListItems returns all items, newest first. This is the canonical order
// whenever no other sort is requested.
func (j *Journal) ListItems(ctx context.Context) ([]recordstore.Item, error) {
	items, err := j.store.Items(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// ListItemsByCategory returns items whose stored category exactly matches
// cat, newest first. Callers must normalize cat first.
func (j *Journal) ListItemsByCategory(ctx context.Context, cat string) ([]recordstore.Item, error) {
	items, err := j.store.Items(ctx)
	if err != nil {
		return nil, err
	}

	filtered := items[:0]
	for _, it := range items {
		if it.Category == cat {
			filtered = append(filtered, it)
		}
	}
	sortNewestFirst(filtered)
	return filtered, nil
}

// SearchItemsByTitle returns items whose title contains term
// (case-insensitive), sorted alphabetically by title rather than by date.
func (j *Journal) SearchItemsByTitle(ctx context.Context, term string) ([]recordstore.Item, error) {
	items, err := j.store.Items(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(term)
	filtered := items[:0]
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), lower) {
			filtered = append(filtered, it)
		}
	}
	sort.SliceStable(filtered, func(a, b int) bool {
		return filtered[a].Title < filtered[b].Title
	})
	return filtered, nil
}

// UpdateItem merges the supplied fields onto the stored item and bumps its
// UpdatedAt. Returns ErrNotFound when no item has the given ID.
func (j *Journal) UpdateItem(ctx context.Context, id int64, u Update) error {
	if u.Title != nil && !validTitle(*u.Title) {
		return fmt.Errorf("%w: title required", ErrInvalid)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	items, err := j.store.Items(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	it := &items[idx]
	if u.Title != nil {
		it.Title = *u.Title
	}
	if u.Brand != nil {
		it.Brand = *u.Brand
	}
	if u.Category != nil {
		// Stored categories stay inside the fixed vocabulary.
		it.Category = category.Normalize(*u.Category)
	}
	if u.Rating != nil {
		it.Rating = *u.Rating
	}
	if u.PhotoURI != nil {
		it.PhotoURI = *u.PhotoURI
	}
	if u.Notes != nil {
		it.Notes = *u.Notes
	}
	it.UpdatedAt = j.now().UTC()

	if err := j.store.SaveItems(ctx, items); err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}
	return nil
}

// DeleteItem removes the item and every event that references it. Events go
// first so an interruption leaves at worst an item with no history, never
// dangling events.
func (j *Journal) DeleteItem(ctx context.Context, id int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	items, err := j.store.Items(ctx)
	if err != nil {
		return err
	}

	found := false
	keptItems := items[:0]
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		keptItems = append(keptItems, it)
	}
	if !found {
		return ErrNotFound
	}

	events, err := j.store.Events(ctx)
	if err != nil {
		return err
	}
	keptEvents := events[:0]
	for _, ev := range events {
		if ev.ItemID != id {
			keptEvents = append(keptEvents, ev)
		}
	}

	if err := j.store.SaveEvents(ctx, keptEvents); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if err := j.store.SaveItems(ctx, keptItems); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

func sortNewestFirst(items []recordstore.Item) {
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})
}
