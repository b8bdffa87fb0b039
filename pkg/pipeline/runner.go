package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/platewise/menupress/pkg/cache"
	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/layout/compat"
	"github.com/platewise/menupress/pkg/layout/grid"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete normalize → analyze → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Normalize
	normalizeStart := time.Now()
	doc, err := r.Normalize(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.NormalizeTime = time.Since(normalizeStart)
	result.Stats.SectionCount = len(doc.Sections)
	result.Stats.ItemCount = doc.TotalItems()

	docData, err := menu.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerationFailed, err, "serialize document")
	}
	result.ContentHash = cache.Hash(docData)

	r.Logger.Info("normalized menu",
		"sections", result.Stats.SectionCount,
		"items", result.Stats.ItemCount,
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Analyze and pick the preset
	result.Characteristics = menu.Analyze(doc)

	preset, compatRes, err := r.SelectPreset(result.Characteristics, opts)
	if err != nil {
		return nil, err
	}
	result.Preset = preset
	result.Compat = compatRes

	r.Logger.Info("selected preset",
		"preset", preset.ID,
		"family", preset.Family,
		"image_ratio", result.Characteristics.ImageRatio)

	// Stage 3: Layout
	layoutStart := time.Now()
	g, pages, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc, result.ContentHash, preset, opts)
	if err != nil {
		return nil, err
	}
	result.Grid = g
	result.Pages = pages
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	if g != nil {
		result.Stats.TileCount = g.TotalTiles
	}
	if pages != nil {
		result.Stats.TileCount = pages.TotalTiles
		result.Stats.PageCount = len(pages.Pages)
	}

	r.Logger.Info("computed layout",
		"engine", opts.Engine,
		"tiles", result.Stats.TileCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Normalize parses and validates the raw payload into a canonical document.
// A pre-normalized Document on the options short-circuits parsing.
func (r *Runner) Normalize(ctx context.Context, opts Options) (*menu.MenuDocument, error) {
	if err := opts.ValidateForNormalize(); err != nil {
		return nil, err
	}
	if opts.Document != nil {
		return opts.Document, nil
	}
	raw, err := menu.ParseRawMenu(opts.Payload)
	if err != nil {
		return nil, err
	}
	return menu.Normalize(raw, opts.Title)
}

// SelectPreset resolves the preset for a run. An explicit template binds its
// preset after a compatibility check; an explicit preset ID wins otherwise;
// with neither, the selector picks from the content profile.
func (r *Runner) SelectPreset(ch menu.Characteristics, opts Options) (layout.Preset, *compat.Result, error) {
	opts.SetLayoutDefaults()

	if opts.TemplateID != "" {
		tpl, err := compat.TemplateByID(opts.TemplateID)
		if err != nil {
			return layout.Preset{}, nil, err
		}
		res := compat.Check(ch, tpl, opts.CompatOptions())
		if err := res.Err(); err != nil {
			return layout.Preset{}, &res, err
		}
		preset, err := layout.PresetByID(tpl.PresetID)
		if err != nil {
			return layout.Preset{}, &res, err
		}
		return preset, &res, nil
	}

	if opts.PresetID != "" {
		preset, err := layout.PresetByID(opts.PresetID)
		return preset, nil, err
	}

	return layout.Select(ch, opts.Thresholds), nil, nil
}

// LayoutWithCacheInfo computes geometry with caching and returns cache hit
// info. Exactly one of the grid and pages results is non-nil, matching the
// engine version.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *menu.MenuDocument, contentHash string, preset layout.Preset, opts Options) (*grid.GridLayout, *grid.LayoutDocument, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(contentHash, opts.LayoutKeyOpts(preset.ID, doc.Currency.Code))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if opts.IsPaged() {
				var cached grid.LayoutDocument
				if err := json.Unmarshal(data, &cached); err == nil {
					return nil, &cached, true, nil
				}
			} else {
				var cached grid.GridLayout
				if err := json.Unmarshal(data, &cached); err == nil {
					return &cached, nil, true, nil
				}
			}
			// Deserialization failure falls through to recompute.
		}
	}

	gridOpts := grid.Options{ShowTitle: opts.ShowTitle(), PageSpec: opts.PageSpec()}

	if opts.IsPaged() {
		pages, err := grid.Paginate(doc, preset, opts.PageSpec(), opts.Context, gridOpts)
		if err != nil {
			return nil, nil, false, err
		}
		if opts.FillersEnabled() && preset.SupportsFiller {
			grid.InsertPageFillers(pages)
		}
		if data, err := json.Marshal(pages); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		}
		return nil, pages, false, nil
	}

	g, err := grid.Generate(doc, preset, opts.Context, gridOpts)
	if err != nil {
		return nil, nil, false, err
	}
	if opts.FillersEnabled() && preset.SupportsFiller {
		grid.InsertFillers(g)
	}
	if data, err := json.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}
	return g, nil, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *menu.MenuDocument, contentHash string, preset layout.Preset, opts Options) (*grid.GridLayout, *grid.LayoutDocument, error) {
	g, pages, _, err := r.LayoutWithCacheInfo(ctx, doc, contentHash, preset, opts)
	return g, pages, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The result must carry the computed layout; artifacts and the HTML
// snapshot are filled in.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Key artifacts off the serialized geometry rather than the source
	// content so identical layouts share rendered output.
	var layoutData []byte
	var err error
	if result.Pages != nil {
		layoutData, err = json.Marshal(result.Pages)
	} else {
		layoutData, err = json.Marshal(result.Grid)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeGenerationFailed, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)
	currency := result.Document.Currency.Code

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, currency))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			r.restoreHTML(result, artifacts)
			return artifacts, true, nil
		}
	}

	rendered, htmlRes, err := renderFormats(result, opts)
	if err != nil {
		return nil, false, err
	}
	result.HTML = htmlRes

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format, currency))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// restoreHTML rebuilds the structured HTML result from a cached artifact.
// The timestamp reflects retrieval, not the original render.
func (r *Runner) restoreHTML(result *Result, artifacts map[string][]byte) {
	data, ok := artifacts[FormatHTML]
	if !ok {
		return
	}
	result.HTML = &sink.HTMLResult{
		HTML:      string(data),
		Size:      len(data),
		Timestamp: time.Now().UTC(),
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
