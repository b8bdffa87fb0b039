// Package grid packs canonical menu documents into tile geometry.
//
// The generator is the single geometry-computation boundary: every export
// surface (live view, HTML snapshot, rasterized documents) consumes the
// tiles produced here read-only and must never recompute or approximate
// coordinates. All packing is pure arithmetic over the document and preset,
// so identical inputs yield byte-identical geometry.
package grid

import "github.com/platewise/menupress/pkg/layout"

// Tile types.
const (
	TileItem          = "ITEM"
	TileSectionHeader = "SECTION_HEADER"
	TileTitle         = "TITLE"
	TileFiller        = "FILLER"
)

// BoundsTolerance is the floating tolerance for the containment invariant:
// for every tile, x+width <= region.width and y+height <= region.height
// within this many layout units.
const BoundsTolerance = 0.01

// Spacing constants in layout units. Heights scale with the preset's
// TextScale; the gutter does not.
const (
	Gutter          = 12.0
	TitleHeight     = 56.0
	HeaderHeight    = 40.0
	MetaBlockHeight = 48.0
)

// Tile is a positioned rectangle representing one content unit or a
// decorative filler. Coordinates are relative to the owning region's origin.
type Tile struct {
	ID        string  `json:"id" bson:"id"`
	Type      string  `json:"type" bson:"type"`
	X         float64 `json:"x" bson:"x"`
	Y         float64 `json:"y" bson:"y"`
	Width     float64 `json:"width" bson:"width"`
	Height    float64 `json:"height" bson:"height"`
	RegionID  string  `json:"region_id" bson:"region_id"`
	SectionID string  `json:"section_id,omitempty" bson:"section_id,omitempty"`
	ItemID    string  `json:"item_id,omitempty" bson:"item_id,omitempty"`
	Label     string  `json:"label,omitempty" bson:"label,omitempty"`
	Style     string  `json:"style,omitempty" bson:"style,omitempty"` // filler cosmetic tag
}

// Region is a rectangular sub-area of a page that owns and bounds tiles.
type Region struct {
	ID     string  `json:"id" bson:"id"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Contains reports whether the tile fits inside the region within
// BoundsTolerance.
func (r Region) Contains(t Tile) bool {
	return t.X >= -BoundsTolerance &&
		t.Y >= -BoundsTolerance &&
		t.X+t.Width <= r.Width+BoundsTolerance &&
		t.Y+t.Height <= r.Height+BoundsTolerance
}

// SectionTiles groups a section's tiles for V1 output.
type SectionTiles struct {
	SectionID string `json:"section_id" bson:"section_id"`
	Name      string `json:"name" bson:"name"`
	Tiles     []Tile `json:"tiles" bson:"tiles"`
}

// GridLayout is the V1 output: a single-context, single-region layout whose
// region grows vertically to hold all content.
type GridLayout struct {
	Context    string         `json:"context" bson:"context"`
	PresetID   string         `json:"preset_id" bson:"preset_id"`
	Columns    int            `json:"columns" bson:"columns"`
	Region     Region         `json:"region" bson:"region"`
	Title      *Tile          `json:"title,omitempty" bson:"title,omitempty"`
	Sections   []SectionTiles `json:"sections" bson:"sections"`
	TotalTiles int            `json:"total_tiles" bson:"total_tiles"`
}

// Tiles returns every tile in placement order, title first.
func (g *GridLayout) Tiles() []Tile {
	out := make([]Tile, 0, g.TotalTiles)
	if g.Title != nil {
		out = append(out, *g.Title)
	}
	for i := range g.Sections {
		out = append(out, g.Sections[i].Tiles...)
	}
	return out
}

// Page is one fixed-size surface of a paginated layout.
type Page struct {
	Index  int     `json:"index" bson:"index"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Region Region  `json:"region" bson:"region"`
	Tiles  []Tile  `json:"tiles" bson:"tiles"`
}

// LayoutDocument is the V2 output: paginated geometry with an explicit page
// spec and one content region per page.
type LayoutDocument struct {
	PageSpec   layout.PageSpec `json:"page_spec" bson:"page_spec"`
	Context    string          `json:"context" bson:"context"`
	PresetID   string          `json:"preset_id" bson:"preset_id"`
	Columns    int             `json:"columns" bson:"columns"`
	Pages      []Page          `json:"pages" bson:"pages"`
	TotalTiles int             `json:"total_tiles" bson:"total_tiles"`
}

// Tiles returns every tile across all pages in placement order.
func (d *LayoutDocument) Tiles() []Tile {
	out := make([]Tile, 0, d.TotalTiles)
	for i := range d.Pages {
		out = append(out, d.Pages[i].Tiles...)
	}
	return out
}
