package layout

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/platewise/menupress/pkg/errors"
)

// Thresholds are the tunable cutoffs for family selection. The four families
// are fixed; these numbers are not, and deployments tune them from a TOML
// file without recompiling.
type Thresholds struct {
	// ImageForwardMinRatio picks image-forward when at least this share of
	// items carries an image.
	ImageForwardMinRatio float64 `toml:"image_forward_min_ratio"`

	// DenseMinItems and DenseMaxImageRatio pick dense for long, mostly
	// text-only menus.
	DenseMinItems      int     `toml:"dense_min_items"`
	DenseMaxImageRatio float64 `toml:"dense_max_image_ratio"`

	// FeatureBandMaxItems/MaxSections pick feature-band for small showcase
	// menus.
	FeatureBandMaxItems    int `toml:"feature_band_max_items"`
	FeatureBandMaxSections int `toml:"feature_band_max_sections"`
}

// DefaultThresholds returns the shipped tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ImageForwardMinRatio:   0.4,
		DenseMinItems:          24,
		DenseMaxImageRatio:     0.15,
		FeatureBandMaxItems:    6,
		FeatureBandMaxSections: 2,
	}
}

// Validate rejects tunings that would make selection degenerate.
func (t Thresholds) Validate() error {
	if t.ImageForwardMinRatio <= 0 || t.ImageForwardMinRatio > 1 {
		return errors.New(errors.ErrCodeInvalidTuning,
			"image_forward_min_ratio must be in (0, 1], got %v", t.ImageForwardMinRatio)
	}
	if t.DenseMaxImageRatio < 0 || t.DenseMaxImageRatio >= t.ImageForwardMinRatio {
		return errors.New(errors.ErrCodeInvalidTuning,
			"dense_max_image_ratio must be in [0, image_forward_min_ratio), got %v", t.DenseMaxImageRatio)
	}
	if t.DenseMinItems < 1 {
		return errors.New(errors.ErrCodeInvalidTuning, "dense_min_items must be >= 1")
	}
	if t.FeatureBandMaxItems < 0 || t.FeatureBandMaxSections < 0 {
		return errors.New(errors.ErrCodeInvalidTuning, "feature band limits cannot be negative")
	}
	return nil
}

// PageSpec is a fixed-size rendering surface for paginated output.
// Dimensions and margin are in layout units (points for print).
type PageSpec struct {
	Width  float64 `json:"width" bson:"width" toml:"width"`
	Height float64 `json:"height" bson:"height" toml:"height"`
	Margin float64 `json:"margin" bson:"margin" toml:"margin"`
}

// DefaultPageSpec is an A4 portrait page with a half-inch margin.
func DefaultPageSpec() PageSpec {
	return PageSpec{Width: 595, Height: 842, Margin: 36}
}

// Validate rejects page specs with no usable content area.
func (p PageSpec) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidTuning,
			"page dimensions must be positive, got %vx%v", p.Width, p.Height)
	}
	if p.Margin < 0 || 2*p.Margin >= p.Width || 2*p.Margin >= p.Height {
		return errors.New(errors.ErrCodeInvalidTuning,
			"margin %v leaves no content area on a %vx%v page", p.Margin, p.Width, p.Height)
	}
	return nil
}

// Tuning bundles everything loadable from a tuning file.
type Tuning struct {
	Thresholds Thresholds `toml:"thresholds"`
	Page       PageSpec   `toml:"page"`
}

// DefaultTuning returns the compiled-in tuning.
func DefaultTuning() Tuning {
	return Tuning{Thresholds: DefaultThresholds(), Page: DefaultPageSpec()}
}

// LoadTuning reads a TOML tuning file, overlaying it on the defaults so a
// file may specify only the values it changes.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, errors.Wrap(errors.ErrCodeInvalidTuning, err, "read tuning file %s", path)
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return Tuning{}, errors.Wrap(errors.ErrCodeInvalidTuning, err, "parse tuning file %s", path)
	}

	if err := t.Thresholds.Validate(); err != nil {
		return Tuning{}, err
	}
	if err := t.Page.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}
