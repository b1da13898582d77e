// Package journal implements the tasting journal's collection-level
// operations and the derived queries the application reads.
//
// All mutations follow the same pattern: load the full collection from the
// record store, edit it in memory, write the full collection back. A single
// mutex serializes mutations so two in-flight writes cannot clobber each
// other's changes.
package journal

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tastelog/tastelog/internal/recordstore"
)

var (
	// ErrNotFound is returned by mutations that reference a missing item.
	ErrNotFound = errors.New("journal: item not found")

	// ErrInvalid is returned when required fields fail validation before
	// any write happens.
	ErrInvalid = errors.New("journal: invalid item")
)

// Journal exposes the journal operations over a record store. Construct one
// with New and inject it into every consumer; it is safe for concurrent use.
type Journal struct {
	store *recordstore.Store

	mu  sync.Mutex // serializes read-modify-write mutations
	now func() time.Time
}

// New creates a Journal over the given record store.
func New(store *recordstore.Store) *Journal {
	return &Journal{store: store, now: time.Now}
}

// ItemFields is the caller-supplied part of a new item.
type ItemFields struct {
	Title    string
	Brand    string
	Category string
	Rating   float64
	PhotoURI string
	Notes    string
}

// Update carries the fields to merge onto an existing item. Nil fields are
// left untouched.
type Update struct {
	Title    *string
	Brand    *string
	Category *string
	Rating   *float64
	PhotoURI *string
	Notes    *string
}

func validTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}
