package recordstore

import "time"

// Item is one logged tasting. The JSON field names are the persisted format
// and must stay stable across releases.
type Item struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Brand     string    `json:"brand"`
	Category  string    `json:"category"`
	Rating    float64   `json:"rating"`
	PhotoURI  string    `json:"photoUri,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event is a single recorded try of an item. Events are append-only: they
// are created and cascade-deleted, never updated.
type Event struct {
	ID      int64     `json:"id"`
	ItemID  int64     `json:"itemId"`
	TriedAt time.Time `json:"triedAt"`
}

// Counters holds the next ID to assign for each collection. Values only
// grow, even across deletes.
type Counters struct {
	ItemID  int64 `json:"itemId"`
	EventID int64 `json:"eventId"`
}

// Stats summarizes stored collection sizes, for diagnostics.
type Stats struct {
	Items  int `json:"items"`
	Events int `json:"events"`
}
