package layout

import (
	"github.com/platewise/menupress/pkg/menu"
)

// Select maps document characteristics to a preset. Selection is heuristic
// but deterministic: the same characteristics always yield the same preset,
// regardless of context (the context only picks a column count out of the
// chosen preset's ColumnSet).
//
// Order matters. Feature-band is checked first so a tiny showcase menu with
// images does not fall into image-forward; dense is checked before balanced
// so a long text menu never gets oversized tiles.
func Select(ch menu.Characteristics, th Thresholds) Preset {
	switch {
	case ch.TotalItems <= th.FeatureBandMaxItems && ch.SectionCount <= th.FeatureBandMaxSections:
		return presets["feature-band-showcase"]
	case ch.ImageRatio >= th.ImageForwardMinRatio:
		return presets["image-forward-overlay"]
	case ch.TotalItems >= th.DenseMinItems && ch.ImageRatio <= th.DenseMaxImageRatio:
		return presets["dense-compact"]
	default:
		return presets["balanced-standard"]
	}
}
