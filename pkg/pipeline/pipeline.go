// Package pipeline provides the core layout pipeline for Menupress.
//
// This package implements the complete normalize → analyze → layout → render
// pipeline used by the CLI and the HTTP API. Centralizing it here keeps the
// two entry points byte-for-byte consistent.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Normalize: Parse and validate raw menu content into a canonical document
//  2. Analyze: Derive the content profile used for preset selection
//  3. Layout: Compute deterministic tile geometry (single grid or paginated)
//  4. Render: Generate output in various formats (SVG, HTML, JSON, PDF, PNG, JPG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Payload: menuJSON,
//	    Context: "desktop",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/platewise/menupress/pkg/cache"
	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/layout/compat"
	"github.com/platewise/menupress/pkg/layout/grid"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/render/sink"
	"github.com/platewise/menupress/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Engine version constants. V1 lays a single growing region for embedding
// in scrollable views; V2 paginates onto fixed pages for print.
const (
	EngineV1 = "v1"
	EngineV2 = "v2"
)

const (
	// DefaultEngine is the single-region grid engine.
	DefaultEngine = EngineV1

	// DefaultContext targets desktop viewports.
	DefaultContext = layout.ContextDesktop

	// DefaultImageMode crops item images to fill their frame.
	DefaultImageMode = sink.ImageModeCover
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatJPG  = "jpg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatHTML: true,
	FormatPDF:  true,
	FormatPNG:  true,
	FormatJPG:  true,
}

// ValidEngines is the set of supported engine versions.
var ValidEngines = map[string]bool{
	EngineV1: true,
	EngineV2: true,
}

// ValidImageModes is the set of supported image fit modes.
var ValidImageModes = map[string]bool{
	sink.ImageModeStretch: true,
	sink.ImageModeContain: true,
	sink.ImageModeCover:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
//
// Boolean fields are named so the zero value is the default behavior:
// fillers and the title band are on unless skipped, textures and text-only
// are off unless requested.
type Options struct {
	// Normalize options
	Payload []byte `json:"payload,omitempty"` // raw menu JSON
	Title   string `json:"title,omitempty"`   // overrides the payload title

	// Layout options
	Engine     string  `json:"engine,omitempty"`      // v1 or v2
	Context    string  `json:"context,omitempty"`     // mobile, tablet, desktop, print
	PresetID   string  `json:"preset_id,omitempty"`   // explicit preset, skips auto-selection
	TemplateID string  `json:"template_id,omitempty"` // template to check and lay out with
	SkipFiller bool    `json:"skip_filler,omitempty"`
	HideTitle  bool    `json:"hide_title,omitempty"`
	PageWidth  float64 `json:"page_width,omitempty"`  // v2 only
	PageHeight float64 `json:"page_height,omitempty"` // v2 only
	PageMargin float64 `json:"page_margin,omitempty"` // v2 only

	// Render options
	Formats   []string `json:"formats,omitempty"`
	PaletteID string   `json:"palette_id,omitempty"`
	ImageMode string   `json:"image_mode,omitempty"`
	TextOnly  bool     `json:"text_only,omitempty"`
	Textures  bool     `json:"textures,omitempty"`

	// Refresh bypasses the layout cache lookup and overwrites the entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Document   *menu.MenuDocument `json:"-"` // pre-normalized input, skips the payload
	Thresholds layout.Thresholds  `json:"-"` // zero value means defaults
	Logger     *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the normalized menu.
	Document *menu.MenuDocument

	// ContentHash is the content hash of the normalized menu.
	ContentHash string

	// Characteristics is the analyzed content profile.
	Characteristics menu.Characteristics

	// Preset is the selected (or template-bound) preset.
	Preset layout.Preset

	// Compat holds the template check result when a template was requested.
	Compat *compat.Result

	// Grid is the V1 layout. Nil under the V2 engine.
	Grid *grid.GridLayout

	// Pages is the V2 paginated layout. Nil under the V1 engine.
	Pages *grid.LayoutDocument

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// HTML is the structured snapshot result when "html" was requested.
	HTML *sink.HTMLResult

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Cached reports whether every cacheable stage was served from cache.
func (r *Result) Cached() bool {
	return r.CacheInfo.LayoutHit && r.CacheInfo.RenderHit
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SectionCount  int
	ItemCount     int
	TileCount     int
	PageCount     int
	NormalizeTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout geometry came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg, html, pdf, png, jpg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine version is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid engine: %q (must be v1 or v2)", engine)
	}
	return nil
}

// ValidateImageMode checks that an image fit mode is valid.
func ValidateImageMode(mode string) error {
	if !ValidImageModes[mode] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid image mode: %q (must be one of: stretch, contain, cover)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForNormalize(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForNormalize checks required fields for normalization.
func (o *Options) ValidateForNormalize() error {
	if o.Document == nil && len(o.Payload) == 0 {
		return errors.New(errors.ErrCodeInvalidMenu, "payload or document is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Context == "" {
		if o.Engine == EngineV2 {
			o.Context = layout.ContextPrint
		} else {
			o.Context = DefaultContext
		}
	}
	if o.Thresholds == (layout.Thresholds{}) {
		o.Thresholds = layout.DefaultThresholds()
	}
	spec := layout.DefaultPageSpec()
	if o.PageWidth == 0 {
		o.PageWidth = spec.Width
	}
	if o.PageHeight == 0 {
		o.PageHeight = spec.Height
	}
	if o.PageMargin == 0 {
		o.PageMargin = spec.Margin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if err := layout.ValidateContext(o.Context); err != nil {
		return err
	}
	if err := o.Thresholds.Validate(); err != nil {
		return err
	}
	if o.Engine == EngineV2 {
		return o.PageSpec().Validate()
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PaletteID == "" {
		o.PaletteID = styles.DefaultPaletteID
	}
	if o.ImageMode == "" {
		o.ImageMode = DefaultImageMode
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateImageMode(o.ImageMode)
}

// FillersEnabled reports whether filler insertion is requested. The preset
// still has the final say through its SupportsFiller flag.
func (o *Options) FillersEnabled() bool {
	return !o.SkipFiller
}

// ShowTitle reports whether the title band is rendered.
func (o *Options) ShowTitle() bool {
	return !o.HideTitle
}

// IsPaged returns true under the paginated V2 engine.
func (o *Options) IsPaged() bool {
	return o.Engine == EngineV2
}

// PageSpec returns the effective page geometry for the V2 engine.
func (o *Options) PageSpec() layout.PageSpec {
	return layout.PageSpec{Width: o.PageWidth, Height: o.PageHeight, Margin: o.PageMargin}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(presetID, currency string) cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{
		EngineVersion: o.Engine,
		PresetID:      presetID,
		TemplateID:    o.TemplateID,
		Context:       o.Context,
		Currency:      currency,
		ShowTitle:     o.ShowTitle(),
		Fillers:       o.FillersEnabled(),
	}
	if o.IsPaged() {
		opts.PageWidth = o.PageWidth
		opts.PageHeight = o.PageHeight
		opts.PageMargin = o.PageMargin
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, currency string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		PaletteID: o.PaletteID,
		ImageMode: o.ImageMode,
		TextOnly:  o.TextOnly,
		Textures:  o.Textures,
		Currency:  currency,
	}
}

// CompatOptions returns the display options relevant to a template check.
func (o *Options) CompatOptions() compat.Options {
	return compat.Options{
		TextOnly:       o.TextOnly,
		PaletteID:      o.PaletteID,
		FillersEnabled: o.FillersEnabled(),
		Context:        o.Context,
	}
}
