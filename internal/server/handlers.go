package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/layout/compat"
	"github.com/platewise/menupress/pkg/layout/grid"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/pipeline"
	"github.com/platewise/menupress/pkg/render/styles"
)

// layoutRequest is the body for layout and render endpoints. The menu is the
// raw extraction payload; options mirror pipeline.Options.
type layoutRequest struct {
	Menu    json.RawMessage  `json:"menu"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the JSON body for POST /v1/layout.
type layoutResponse struct {
	ContentHash     string               `json:"content_hash"`
	Engine          string               `json:"engine"`
	Context         string               `json:"context"`
	Preset          layout.Preset        `json:"preset"`
	Characteristics menu.Characteristics `json:"characteristics"`
	Compat          *compat.Result       `json:"compat,omitempty"`
	Grid            *grid.GridLayout     `json:"grid,omitempty"`
	Pages           *grid.LayoutDocument `json:"pages,omitempty"`
	Cached          bool                 `json:"cached"`
}

// contentTypes maps formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJPG:  "image/jpeg",
}

func (s *Server) decodeLayoutRequest(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidMenu, "invalid request body: %v", err))
		return pipeline.Options{}, false
	}
	opts := req.Options
	if len(req.Menu) > 0 {
		opts.Payload = req.Menu
	}
	opts.Thresholds = s.tuning.Thresholds
	if opts.PageWidth == 0 && opts.PageHeight == 0 && opts.PageMargin == 0 {
		opts.PageWidth = s.tuning.Page.Width
		opts.PageHeight = s.tuning.Page.Height
		opts.PageMargin = s.tuning.Page.Margin
	}
	opts.Logger = s.logger
	// Resolve defaults here so responses echo the effective engine/context,
	// not the zero values the caller omitted.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return pipeline.Options{}, false
	}
	return opts, true
}

// handleLayout runs the pipeline and returns the computed geometry.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeLayoutRequest(w, r)
	if !ok {
		return
	}
	// Geometry only; artifact formats come from the render endpoint.
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		ContentHash:     result.ContentHash,
		Engine:          opts.Engine,
		Context:         opts.Context,
		Preset:          result.Preset,
		Characteristics: result.Characteristics,
		Compat:          result.Compat,
		Grid:            result.Grid,
		Pages:           result.Pages,
		Cached:          result.Cached(),
	})
}

// handleRender runs the pipeline and streams one rendered artifact.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	opts, ok := s.decodeLayoutRequest(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// checkRequest is the body for POST /v1/check.
type checkRequest struct {
	Menu       json.RawMessage `json:"menu"`
	TemplateID string          `json:"template_id"`
	TextOnly   bool            `json:"text_only"`
	PaletteID  string          `json:"palette_id"`
	SkipFiller bool            `json:"skip_filler"`
	Context    string          `json:"context"`
}

// checkResponse reports a template compatibility classification. The check
// itself succeeding is a 200 even when the verdict is INCOMPATIBLE.
type checkResponse struct {
	TemplateID      string               `json:"template_id"`
	Result          compat.Result        `json:"result"`
	Characteristics menu.Characteristics `json:"characteristics"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidMenu, "invalid request body: %v", err))
		return
	}

	tpl, err := compat.TemplateByID(req.TemplateID)
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.runner.Normalize(r.Context(), pipeline.Options{Payload: req.Menu})
	if err != nil {
		writeError(w, err)
		return
	}
	ch := menu.Analyze(doc)

	res := compat.Check(ch, tpl, compat.Options{
		TextOnly:       req.TextOnly,
		PaletteID:      req.PaletteID,
		FillersEnabled: !req.SkipFiller,
		Context:        req.Context,
	})

	writeJSON(w, http.StatusOK, checkResponse{
		TemplateID:      tpl.ID,
		Result:          res,
		Characteristics: ch,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	ids := layout.PresetIDs()
	presets := make([]layout.Preset, 0, len(ids))
	for _, id := range ids {
		p, err := layout.PresetByID(id)
		if err != nil {
			continue
		}
		presets = append(presets, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": presets})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	ids := compat.TemplateIDs()
	templates := make([]compat.Template, 0, len(ids))
	for _, id := range ids {
		t, err := compat.TemplateByID(id)
		if err != nil {
			continue
		}
		templates = append(templates, t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"palettes": styles.PaletteIDs()})
}
