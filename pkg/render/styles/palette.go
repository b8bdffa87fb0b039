// Package styles holds the visual vocabulary shared by the render sinks:
// color palettes, filler textures, and tile text sizing. Styles affect
// presentation only; geometry is computed upstream and consumed read-only.
package styles

// Palette is a named color scheme applied at render time.
type Palette struct {
	ID         string
	Background string
	Surface    string
	Accent     string
	Text       string
	Muted      string
}

var palettes = map[string]Palette{
	"classic": {
		ID:         "classic",
		Background: "#fdfbf7",
		Surface:    "#ffffff",
		Accent:     "#8c2f39",
		Text:       "#2b2b2b",
		Muted:      "#8a8578",
	},
	"ocean": {
		ID:         "ocean",
		Background: "#f4f9fb",
		Surface:    "#ffffff",
		Accent:     "#1f6f8b",
		Text:       "#17323d",
		Muted:      "#7fa3b0",
	},
	"terracotta": {
		ID:         "terracotta",
		Background: "#faf3ec",
		Surface:    "#fffaf4",
		Accent:     "#c46a4a",
		Text:       "#3d2c24",
		Muted:      "#b09a8b",
	},
	"forest": {
		ID:         "forest",
		Background: "#f3f7f2",
		Surface:    "#fcfdfb",
		Accent:     "#3e6b48",
		Text:       "#22301f",
		Muted:      "#93a58f",
	},
	"noir": {
		ID:         "noir",
		Background: "#171717",
		Surface:    "#222222",
		Accent:     "#d4af37",
		Text:       "#f2f2f2",
		Muted:      "#9a9a9a",
	},
}

// DefaultPaletteID is used when the caller picks none.
const DefaultPaletteID = "classic"

// PaletteByID resolves a palette, falling back to the default for unknown or
// empty IDs. Palette choice is cosmetic, so an unknown ID degrades rather
// than fails.
func PaletteByID(id string) Palette {
	if p, ok := palettes[id]; ok {
		return p
	}
	return palettes[DefaultPaletteID]
}

// PaletteIDs returns all palette IDs in stable order.
func PaletteIDs() []string {
	return []string{"classic", "forest", "noir", "ocean", "terracotta"}
}
