// Package photo handles the photo reference attached to an item.
//
// A reference is persisted as a single string: either "stock:<id>" naming
// an entry in the built-in stock catalog, or a plain URI pointing at an
// image the user picked or captured. An empty string means no photo.
package photo

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

const stockPrefix = "stock:"

// Kind discriminates the two reference forms.
type Kind string

const (
	KindStock Kind = "stock"
	KindURI   Kind = "uri"
)

// Ref is a decoded photo reference.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`  // stock photo identifier
	URI  string `json:"uri,omitempty"` // picked or captured image location
}

// Stock builds a reference to a stock catalog entry.
func Stock(id string) Ref {
	return Ref{Kind: KindStock, ID: id}
}

// URI builds a reference to a user-supplied image location.
func URI(uri string) Ref {
	return Ref{Kind: KindURI, URI: uri}
}

// Encode renders the reference into its stored string form.
func (r Ref) Encode() string {
	switch r.Kind {
	case KindStock:
		if r.ID == "" {
			return ""
		}
		return stockPrefix + r.ID
	case KindURI:
		return r.URI
	}
	return ""
}

// Decode parses a stored photo string. Empty input yields (Ref{}, false).
func Decode(stored string) (Ref, bool) {
	if stored == "" {
		return Ref{}, false
	}
	if id, ok := strings.CutPrefix(stored, stockPrefix); ok {
		return Stock(id), true
	}
	return URI(stored), true
}

// Resolve maps a stored photo string onto a displayable source: the stock
// entry's asset path, or the URI itself. Returns "" when there is no photo
// or the stock ID is unknown.
func Resolve(stored string) string {
	ref, ok := Decode(stored)
	if !ok {
		return ""
	}
	switch ref.Kind {
	case KindStock:
		if entry, ok := Lookup(ref.ID); ok {
			return entry.Asset
		}
		return ""
	case KindURI:
		return ref.URI
	}
	return ""
}

// NewCaptureURI mints a unique relative location for a freshly captured or
// picked image. ext should include the dot, e.g. ".jpg".
func NewCaptureURI(ext string) string {
	if ext == "" {
		ext = ".jpg"
	}
	return path.Join("captures", uuid.NewString()+ext)
}
