package layout

import (
	"github.com/platewise/menupress/pkg/errors"
)

// Layout families. A family names a column-density and tile-styling strategy;
// the four families are the contract, their thresholds are tunable.
const (
	FamilyDense        = "dense"
	FamilyImageForward = "image-forward"
	FamilyBalanced     = "balanced"
	FamilyFeatureBand  = "feature-band"
)

// Metadata placement modes for item tiles.
const (
	MetadataOverlay  = "overlay"  // name/price drawn over the image
	MetadataAdjacent = "adjacent" // name/price in a block next to the visual
)

// ColumnSet holds per-context column counts. The screen contexts must be
// monotonic (Mobile <= Tablet <= Desktop); Print is independent and fixed.
type ColumnSet struct {
	Mobile  int `json:"mobile" bson:"mobile" toml:"mobile"`
	Tablet  int `json:"tablet" bson:"tablet" toml:"tablet"`
	Desktop int `json:"desktop" bson:"desktop" toml:"desktop"`
	Print   int `json:"print" bson:"print" toml:"print"`
}

// For returns the column count for the given context.
func (c ColumnSet) For(ctx string) int {
	switch ctx {
	case ContextMobile:
		return c.Mobile
	case ContextTablet:
		return c.Tablet
	case ContextPrint:
		return c.Print
	default:
		return c.Desktop
	}
}

// Validate checks column sanity and screen-context monotonicity.
func (c ColumnSet) Validate() error {
	if c.Mobile < 1 || c.Tablet < 1 || c.Desktop < 1 || c.Print < 1 {
		return errors.New(errors.ErrCodeInvalidPreset, "column counts must be >= 1")
	}
	if c.Mobile > c.Tablet || c.Tablet > c.Desktop {
		return errors.New(errors.ErrCodeInvalidPreset,
			"screen columns must be monotonic: mobile(%d) <= tablet(%d) <= desktop(%d)",
			c.Mobile, c.Tablet, c.Desktop)
	}
	return nil
}

// Preset is a named layout strategy: a family plus the concrete density and
// tile styling the generator packs with.
type Preset struct {
	ID             string    `json:"id" bson:"id"`
	Family         string    `json:"family" bson:"family"`
	Columns        ColumnSet `json:"columns" bson:"columns"`
	TileAspect     float64   `json:"tile_aspect" bson:"tile_aspect"` // width / height of an item tile
	TextScale      float64   `json:"text_scale" bson:"text_scale"`
	MetadataMode   string    `json:"metadata_mode" bson:"metadata_mode"`
	SupportsFiller bool      `json:"supports_filler" bson:"supports_filler"`
}

// Built-in presets, one per family. IDs are stable: they appear in cache keys
// and API responses.
var presets = map[string]Preset{
	"dense-compact": {
		ID:             "dense-compact",
		Family:         FamilyDense,
		Columns:        ColumnSet{Mobile: 2, Tablet: 3, Desktop: 4, Print: 3},
		TileAspect:     1.6,
		TextScale:      0.85,
		MetadataMode:   MetadataAdjacent,
		SupportsFiller: false,
	},
	"image-forward-overlay": {
		ID:             "image-forward-overlay",
		Family:         FamilyImageForward,
		Columns:        ColumnSet{Mobile: 1, Tablet: 2, Desktop: 3, Print: 2},
		TileAspect:     1.0,
		TextScale:      1.0,
		MetadataMode:   MetadataOverlay,
		SupportsFiller: true,
	},
	"balanced-standard": {
		ID:             "balanced-standard",
		Family:         FamilyBalanced,
		Columns:        ColumnSet{Mobile: 1, Tablet: 2, Desktop: 3, Print: 2},
		TileAspect:     1.3,
		TextScale:      1.0,
		MetadataMode:   MetadataAdjacent,
		SupportsFiller: true,
	},
	"feature-band-showcase": {
		ID:             "feature-band-showcase",
		Family:         FamilyFeatureBand,
		Columns:        ColumnSet{Mobile: 1, Tablet: 1, Desktop: 2, Print: 1},
		TileAspect:     2.0,
		TextScale:      1.2,
		MetadataMode:   MetadataOverlay,
		SupportsFiller: true,
	},
}

// PresetByID looks up a built-in preset.
func PresetByID(id string) (Preset, error) {
	p, ok := presets[id]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset: %q", id)
	}
	return p, nil
}

// PresetIDs returns all built-in preset IDs in stable order.
func PresetIDs() []string {
	return []string{
		"balanced-standard",
		"dense-compact",
		"feature-band-showcase",
		"image-forward-overlay",
	}
}
