// Package draft holds the transient form state for a tasting being
// composed. The draft lives only in memory: it is reset on save or cancel
// and lost on process restart, which is accepted behavior.
package draft

import (
	"sync"
	"time"

	"github.com/tastelog/tastelog/internal/category"
	"github.com/tastelog/tastelog/internal/photo"
)

// State is a snapshot of the draft's fields.
type State struct {
	Title            string    `json:"title"`
	Brand            string    `json:"brand"`
	SelectedCategory string    `json:"selectedCategory"`
	Rating           float64   `json:"rating"`
	Notes            string    `json:"notes"`
	Photo            photo.Ref `json:"photo"`
	HasPhoto         bool      `json:"hasPhoto"`
	DateTried        string    `json:"dateTried"` // YYYY-MM-DD
}

// Holder is the mutable draft. It is safe for concurrent use and never
// touches persistent storage.
type Holder struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

// NewHolder creates a draft holder with default field values.
func NewHolder() *Holder {
	h := &Holder{now: time.Now}
	h.state = h.defaults()
	return h
}

func (h *Holder) defaults() State {
	return State{
		SelectedCategory: category.Other,
		DateTried:        h.now().UTC().Format("2006-01-02"),
	}
}

// Snapshot returns a copy of the current draft state.
func (h *Holder) Snapshot() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// SetTitle sets the draft title.
func (h *Holder) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Title = title
}

// SetBrand sets the draft brand.
func (h *Holder) SetBrand(brand string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Brand = brand
}

// SetCategory sets the selected category, normalized into the fixed set.
func (h *Holder) SetCategory(cat string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.SelectedCategory = category.Normalize(cat)
}

// SetRating sets the draft rating, clamped into [0, 5].
func (h *Holder) SetRating(rating float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	h.state.Rating = rating
}

// SetNotes sets the draft notes.
func (h *Holder) SetNotes(notes string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Notes = notes
}

// SetPhoto attaches a photo reference to the draft.
func (h *Holder) SetPhoto(ref photo.Ref) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Photo = ref
	h.state.HasPhoto = true
}

// ClearPhoto detaches the draft's photo.
func (h *Holder) ClearPhoto() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Photo = photo.Ref{}
	h.state.HasPhoto = false
}

// SetDateTried sets the date (YYYY-MM-DD) the tasting happened.
func (h *Holder) SetDateTried(date string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.DateTried = date
}

// Reset returns the draft to its default values. Called after a successful
// save or an explicit cancel.
func (h *Holder) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = h.defaults()
}
