// Package recordstore persists the journal's three collections (items,
// events, and ID counters) as whole JSON blobs in a key-value medium.
//
// There is no partial update: callers read a full collection, mutate it in
// memory, and write the full collection back. The store self-heals from a
// missing or empty medium by lazily re-running Initialize, and its read
// paths degrade to empty defaults on I/O or decode failure rather than
// propagating the error.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tastelog/tastelog/internal/kvstore"
	"github.com/tastelog/tastelog/internal/observability"
)

// Storage keys for the three collections.
const (
	itemsKey    = "tastings/items"
	eventsKey   = "tastings/events"
	countersKey = "tastings/counters"
)

// ErrUnavailable is returned when the store cannot be initialized.
var ErrUnavailable = errors.New("recordstore: store unavailable")

// Store is the durable record store. Construct one with New and share it;
// it is safe for concurrent use.
type Store struct {
	kv  kvstore.KV
	log *observability.Logger

	mu    sync.Mutex // guards ready and counter read-modify-write
	ready bool
}

// New creates a Store over the given medium. Call Initialize before first
// use, or rely on lazy initialization by the first operation.
func New(kv kvstore.KV, log *observability.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Initialize creates any of the three collections that do not exist yet.
// It is idempotent and never overwrites existing data.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked(ctx)
}

func (s *Store) initLocked(ctx context.Context) error {
	defaults := []struct {
		key   string
		value any
	}{
		{itemsKey, []Item{}},
		{eventsKey, []Event{}},
		{countersKey, Counters{ItemID: 1, EventID: 1}},
	}

	for _, d := range defaults {
		existing, err := s.kv.Get(ctx, d.key)
		if err != nil {
			s.ready = false
			return fmt.Errorf("initialize %s: %w", d.key, err)
		}
		if existing != nil {
			continue
		}
		blob, err := json.Marshal(d.value)
		if err != nil {
			s.ready = false
			return fmt.Errorf("initialize %s: %w", d.key, err)
		}
		if err := s.kv.Set(ctx, d.key, blob); err != nil {
			s.ready = false
			return fmt.Errorf("initialize %s: %w", d.key, err)
		}
	}

	s.ready = true
	s.log.Debug("record store initialized")
	return nil
}

// Ready reports whether the store has been initialized successfully.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// ensureReady lazily initializes the store. All operations call it first
// and fail with ErrUnavailable when initialization cannot succeed.
func (s *Store) ensureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	s.log.Warn("record store not ready, attempting initialization")
	if err := s.initLocked(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Items returns the full items collection. A missing or unreadable blob
// yields an empty slice, not an error.
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	if err := s.ensureReady(ctx); err != nil {
		return nil, err
	}

	blob, err := s.kv.Get(ctx, itemsKey)
	if err != nil {
		s.log.Error("read items failed, returning empty", "error", err)
		return []Item{}, nil
	}
	if blob == nil {
		return []Item{}, nil
	}

	var items []Item
	if err := json.Unmarshal(blob, &items); err != nil {
		s.log.Error("decode items failed, returning empty", "error", err)
		return []Item{}, nil
	}
	return items, nil
}

// SaveItems overwrites the entire items collection.
func (s *Store) SaveItems(ctx context.Context, items []Item) error {
	if err := s.ensureReady(ctx); err != nil {
		return err
	}
	if items == nil {
		items = []Item{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := s.kv.Set(ctx, itemsKey, blob); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	return nil
}

// Events returns the full events collection. A missing or unreadable blob
// yields an empty slice, not an error.
func (s *Store) Events(ctx context.Context) ([]Event, error) {
	if err := s.ensureReady(ctx); err != nil {
		return nil, err
	}

	blob, err := s.kv.Get(ctx, eventsKey)
	if err != nil {
		s.log.Error("read events failed, returning empty", "error", err)
		return []Event{}, nil
	}
	if blob == nil {
		return []Event{}, nil
	}

	var events []Event
	if err := json.Unmarshal(blob, &events); err != nil {
		s.log.Error("decode events failed, returning empty", "error", err)
		return []Event{}, nil
	}
	return events, nil
}

// SaveEvents overwrites the entire events collection.
func (s *Store) SaveEvents(ctx context.Context, events []Event) error {
	if err := s.ensureReady(ctx); err != nil {
		return err
	}
	if events == nil {
		events = []Event{}
	}
	blob, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if err := s.kv.Set(ctx, eventsKey, blob); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}

// NextItemID assigns and persists the next item ID.
func (s *Store) NextItemID(ctx context.Context) (int64, error) {
	return s.nextID(ctx, func(c *Counters) *int64 { return &c.ItemID })
}

// NextEventID assigns and persists the next event ID.
func (s *Store) NextEventID(ctx context.Context) (int64, error) {
	return s.nextID(ctx, func(c *Counters) *int64 { return &c.EventID })
}

// nextID returns the current counter value and persists the increment as
// one logical step. An I/O failure fails the operation; a missing or
// corrupt counters blob is rebuilt from the highest assigned ID so a fresh
// counter can never collide with existing records.
func (s *Store) nextID(ctx context.Context, field func(*Counters) *int64) (int64, error) {
	if err := s.ensureReady(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counters, err := s.loadCountersLocked(ctx)
	if err != nil {
		return 0, err
	}

	slot := field(counters)
	id := *slot
	*slot = id + 1

	blob, err := json.Marshal(counters)
	if err != nil {
		return 0, fmt.Errorf("encode counters: %w", err)
	}
	if err := s.kv.Set(ctx, countersKey, blob); err != nil {
		return 0, fmt.Errorf("save counters: %w", err)
	}
	return id, nil
}

func (s *Store) loadCountersLocked(ctx context.Context) (*Counters, error) {
	blob, err := s.kv.Get(ctx, countersKey)
	if err != nil {
		return nil, fmt.Errorf("read counters: %w", err)
	}

	if blob != nil {
		var counters Counters
		if err := json.Unmarshal(blob, &counters); err == nil &&
			counters.ItemID >= 1 && counters.EventID >= 1 {
			return &counters, nil
		}
		s.log.Error("counters blob corrupt, rebuilding from stored records")
	} else {
		s.log.Warn("counters blob missing, rebuilding from stored records")
	}

	return s.rebuildCountersLocked(ctx)
}

// rebuildCountersLocked derives fresh counters as max assigned ID + 1.
func (s *Store) rebuildCountersLocked(ctx context.Context) (*Counters, error) {
	counters := &Counters{ItemID: 1, EventID: 1}

	if blob, err := s.kv.Get(ctx, itemsKey); err == nil && blob != nil {
		var items []Item
		if json.Unmarshal(blob, &items) == nil {
			for _, it := range items {
				if it.ID >= counters.ItemID {
					counters.ItemID = it.ID + 1
				}
			}
		}
	}
	if blob, err := s.kv.Get(ctx, eventsKey); err == nil && blob != nil {
		var events []Event
		if json.Unmarshal(blob, &events) == nil {
			for _, ev := range events {
				if ev.ID >= counters.EventID {
					counters.EventID = ev.ID + 1
				}
			}
		}
	}
	return counters, nil
}

// ClearAll deletes all three collections and re-initializes empty ones.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, itemsKey, eventsKey, countersKey); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	s.ready = false
	if err := s.initLocked(ctx); err != nil {
		return err
	}
	s.log.Info("all data cleared")
	return nil
}

// Stats returns collection sizes, for diagnostics only.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return Stats{}, err
	}
	events, err := s.Events(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Items: len(items), Events: len(events)}, nil
}
