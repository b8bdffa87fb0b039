package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/platewise/menupress/pkg/cache"
	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/menu/fixture"
)

var samplePayload = []byte(`{
	"title": "Corner Bistro",
	"currency": "USD",
	"categories": [
		{
			"name": "Starters",
			"items": [
				{"name": "Soup of the Day", "price": 6.5},
				{"name": "Bruschetta", "price": 8, "image": "https://img.example/bruschetta.jpg"}
			]
		},
		{
			"name": "Mains",
			"items": [
				{"name": "Fish & Chips", "price": 14.5, "description": "Beer battered cod"},
				{"name": "Mushroom Risotto", "price": 13},
				{"name": "Ribeye Steak", "price": 24, "image": "https://img.example/ribeye.jpg"}
			]
		}
	]
}`)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Payload: samplePayload}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if opts.Engine != EngineV1 {
		t.Errorf("engine = %q, want v1", opts.Engine)
	}
	if opts.Context != layout.ContextDesktop {
		t.Errorf("context = %q, want desktop", opts.Context)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("formats = %v, want [svg]", opts.Formats)
	}
	if !opts.FillersEnabled() || !opts.ShowTitle() {
		t.Error("fillers and title should default to enabled")
	}

	// Idempotent: a second call must not change anything.
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if opts.Engine != before.Engine || opts.Context != before.Context {
		t.Error("revalidation changed options")
	}
}

func TestOptionsV2DefaultsToPrint(t *testing.T) {
	opts := Options{Payload: samplePayload, Engine: EngineV2}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if opts.Context != layout.ContextPrint {
		t.Errorf("context = %q, want print under v2", opts.Context)
	}
	spec := opts.PageSpec()
	if spec != layout.DefaultPageSpec() {
		t.Errorf("page spec = %+v, want defaults", spec)
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing payload", Options{}, errors.ErrCodeInvalidMenu},
		{"bad format", Options{Payload: samplePayload, Formats: []string{"docx"}}, errors.ErrCodeInvalidFormat},
		{"bad engine", Options{Payload: samplePayload, Engine: "v3"}, errors.ErrCodeInvalidFormat},
		{"bad context", Options{Payload: samplePayload, Context: "watch"}, errors.ErrCodeInvalidContext},
		{"bad image mode", Options{Payload: samplePayload, ImageMode: "tile"}, errors.ErrCodeInvalidFormat},
		{"bad page", Options{Payload: samplePayload, Engine: EngineV2, PageMargin: 400}, errors.ErrCodeInvalidTuning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestExecuteV1(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Payload: samplePayload,
		Formats: []string{FormatSVG, FormatJSON, FormatHTML},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Grid == nil {
		t.Fatal("v1 run should produce a grid")
	}
	if result.Pages != nil {
		t.Error("v1 run should not produce pages")
	}
	if result.Stats.TileCount < result.Stats.ItemCount {
		t.Errorf("tiles %d < items %d", result.Stats.TileCount, result.Stats.ItemCount)
	}
	if result.ContentHash == "" {
		t.Error("content hash not set")
	}
	for _, format := range []string{FormatSVG, FormatJSON, FormatHTML} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if result.HTML == nil || result.HTML.Size == 0 {
		t.Error("html snapshot result not populated")
	}
	if result.Cached() {
		t.Error("first run against a null cache reported as cached")
	}
}

func TestExecuteV2Paged(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	doc := fixture.GenerateN(3, 60)
	result, err := runner.Execute(context.Background(), Options{
		Document: doc,
		Engine:   EngineV2,
		Formats:  []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if result.Pages == nil {
		t.Fatal("v2 run should produce pages")
	}
	if result.Grid != nil {
		t.Error("v2 run should not produce a grid")
	}
	if result.Stats.PageCount < 2 {
		t.Errorf("60 items should paginate onto multiple pages, got %d", result.Stats.PageCount)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := Options{Payload: samplePayload, Formats: []string{FormatSVG, FormatJSON}}
	a, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	for _, format := range opts.Formats {
		if !bytes.Equal(a.Artifacts[format], b.Artifacts[format]) {
			t.Errorf("%s output differs between identical runs", format)
		}
	}
	if a.ContentHash != b.ContentHash {
		t.Error("content hash differs between identical runs")
	}
}

func TestExecuteContentHashIsDocumentIdentity(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{Payload: samplePayload, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := menu.Marshal(res.Document)
	if err != nil {
		t.Fatal(err)
	}
	if res.ContentHash != cache.Hash(data) {
		t.Errorf("ContentHash = %q, want hash of the serialized document", res.ContentHash)
	}
}

func TestExecuteV1PrintUsesPageGeometry(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{
		Payload:    samplePayload,
		Engine:     EngineV1,
		Context:    layout.ContextPrint,
		PageWidth:  612,
		PageHeight: 792,
		PageMargin: 54,
		Formats:    []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Grid == nil {
		t.Fatal("expected a V1 grid")
	}
	if want := 612.0 - 2*54.0; res.Grid.Region.Width != want {
		t.Errorf("region width = %v, want %v from the tuned page", res.Grid.Region.Width, want)
	}
}

func TestExecuteCacheHits(t *testing.T) {
	c := cache.NewMemoryCache(cache.DefaultCapacity)
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Payload: samplePayload, Formats: []string{FormatSVG, FormatJSON}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Cached() {
		t.Error("first run reported as cached")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run missed the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the artifact cache")
	}
	if !second.Cached() {
		t.Error("fully cached run not reported as cached")
	}

	for _, format := range opts.Formats {
		if !bytes.Equal(first.Artifacts[format], second.Artifacts[format]) {
			t.Errorf("cached %s artifact differs from original", format)
		}
	}

	// Refresh bypasses the cache and recomputes.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if third.Cached() {
		t.Error("refresh run reported as cached")
	}
}

func TestExecuteContentEditInvalidatesCache(t *testing.T) {
	c := cache.NewMemoryCache(cache.DefaultCapacity)
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	first, err := runner.Execute(context.Background(), Options{Payload: samplePayload})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	edited := bytes.Replace(samplePayload, []byte("6.5"), []byte("7.5"), 1)
	second, err := runner.Execute(context.Background(), Options{Payload: edited})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.CacheInfo.LayoutHit {
		t.Error("edited content must not hit the previous layout entry")
	}
	if first.ContentHash == second.ContentHash {
		t.Error("content hash unchanged after edit")
	}
}

func TestExecuteTemplateBindsPreset(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Payload:    samplePayload,
		TemplateID: "classic-card",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Preset.ID != "balanced-standard" {
		t.Errorf("preset = %q, want the template's bound preset", result.Preset.ID)
	}
	if result.Compat == nil {
		t.Fatal("template run should carry a compat result")
	}
}

func TestExecuteTemplateIncompatible(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	// Gallery has no text-only fallback, so forcing text-only must fail.
	_, err := runner.Execute(context.Background(), Options{
		Payload:    samplePayload,
		TemplateID: "gallery",
		TextOnly:   true,
	})
	if err == nil {
		t.Fatal("expected incompatibility error")
	}
	if errors.GetCode(err) != errors.ErrCodeTemplateIncompatible {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeTemplateIncompatible)
	}
}

func TestExecuteUnknownTemplate(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Payload:    samplePayload,
		TemplateID: "art-deco",
	})
	if errors.GetCode(err) != errors.ErrCodeInvalidTemplate {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidTemplate)
	}
}

func TestSelectPresetExplicit(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	ch := menu.Characteristics{SectionCount: 2, TotalItems: 10}
	preset, compatRes, err := runner.SelectPreset(ch, Options{PresetID: "dense-compact"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if preset.ID != "dense-compact" {
		t.Errorf("preset = %q, want dense-compact", preset.ID)
	}
	if compatRes != nil {
		t.Error("explicit preset should not produce a compat result")
	}
}

func TestExecuteLatencySmallMenu(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	doc := fixture.GenerateN(1, 50)
	start := time.Now()
	_, err := runner.Execute(context.Background(), Options{
		Document: doc,
		Formats:  []string{FormatSVG, FormatJSON, FormatHTML},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("50-item run took %v, want under 500ms", elapsed)
	}
}

func TestExecuteLatencyLargeMenu(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	doc := fixture.GenerateN(1, 200)
	start := time.Now()
	_, err := runner.Execute(context.Background(), Options{
		Document: doc,
		Engine:   EngineV2,
		Formats:  []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("200-item run took %v, want under 1s", elapsed)
	}
}

func TestRenderFormatsJSONIsCanonicalGeometry(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Payload: samplePayload,
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact invalid: %v", err)
	}
	if _, ok := decoded["total_tiles"]; !ok {
		t.Error("json artifact missing total_tiles")
	}
}
