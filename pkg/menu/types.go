// Package menu defines the canonical menu document model and the content
// normalizer that builds it from raw extraction payloads.
//
// The canonical types are the single source of truth for everything
// downstream: characteristics analysis, preset selection, grid generation and
// export all consume a MenuDocument and never look at the raw payload again.
//
// The format is designed for round-trip fidelity: normalize → serialize →
// re-import produces identical results, and serialization is deterministic so
// content hashes are stable cache keys.
package menu

import (
	"encoding/json"
	"strings"
)

// Limits enforced by the normalizer.
const (
	MaxItemNameLen    = 200
	MaxDescriptionLen = 500
)

// MenuDocument is the canonical, validated menu content object.
// A document always contains at least one section.
type MenuDocument struct {
	Title    string    `json:"title,omitempty" bson:"title,omitempty"`
	Currency Currency  `json:"currency" bson:"currency"`
	Sections []Section `json:"sections" bson:"sections"`
}

// Section is an ordered group of items with a non-empty display name.
type Section struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Items []Item `json:"items" bson:"items"`
}

// Item is a single menu entry.
type Item struct {
	ID          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	ImageRef    string  `json:"image_ref,omitempty" bson:"image_ref,omitempty"`
	Featured    bool    `json:"featured,omitempty" bson:"featured,omitempty"`
}

// HasImage reports whether the item carries an image reference.
func (i *Item) HasImage() bool { return strings.TrimSpace(i.ImageRef) != "" }

// HasDescription reports whether the item carries a non-blank description.
func (i *Item) HasDescription() bool { return strings.TrimSpace(i.Description) != "" }

// TotalItems returns the number of items across all sections.
func (d *MenuDocument) TotalItems() int {
	n := 0
	for i := range d.Sections {
		n += len(d.Sections[i].Items)
	}
	return n
}

// Marshal serializes the document to JSON with deterministic field order.
// The output is the content identity used for cache keys.
func Marshal(d *MenuDocument) ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal deserializes a canonical document.
func Unmarshal(data []byte) (*MenuDocument, error) {
	var d MenuDocument
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
