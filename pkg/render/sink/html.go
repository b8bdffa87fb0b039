package sink

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout/grid"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/render/styles"
)

// HTMLResult is a self-contained HTML snapshot of a layout.
type HTMLResult struct {
	HTML      string    `json:"html"`
	Size      int       `json:"size"`
	Timestamp time.Time `json:"timestamp"`
}

type htmlTile struct {
	Type    string
	Label   string
	Price   string
	Desc    string
	Image   string
	Style   template.CSS
	Texture string
}

type htmlPage struct {
	Style template.CSS
	Tiles []htmlTile
}

type htmlData struct {
	Title     string
	Palette   styles.Palette
	BodyWidth float64
	Pages     []htmlPage
}

// Tile coordinates come straight from the generator; positioning is
// absolute so the snapshot mirrors the SVG geometry exactly.
var htmlTmpl = template.Must(template.New("menu").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; padding: 0; background: {{.Palette.Muted}}; font-family: Helvetica, Arial, sans-serif; }
.page { position: relative; margin: 12px auto; background: {{.Palette.Background}}; overflow: hidden; }
.tile { position: absolute; box-sizing: border-box; }
.tile-item { background: {{.Palette.Surface}}; border-radius: 4px; padding: 6px; overflow: hidden; }
.tile-filler { background: {{.Palette.Surface}}; border-radius: 4px; opacity: 0.8; display: flex; align-items: center; justify-content: center; color: {{.Palette.Muted}}; }
.tile-title { color: {{.Palette.Text}}; font-family: Georgia, serif; display: flex; align-items: center; justify-content: center; font-size: 24px; }
.tile-header { color: {{.Palette.Accent}}; font-family: Georgia, serif; border-bottom: 1px solid {{.Palette.Accent}}; display: flex; align-items: flex-end; font-size: 18px; }
.name { color: {{.Palette.Text}}; font-size: 13px; font-weight: bold; }
.desc { color: {{.Palette.Muted}}; font-size: 11px; }
.price { color: {{.Palette.Accent}}; font-size: 12px; position: absolute; right: 6px; bottom: 6px; }
.thumb { width: 100%; height: 55%; object-fit: cover; border-radius: 4px 4px 0 0; }
</style>
</head>
<body>
{{- range .Pages}}
<div class="page" style="{{.Style}}">
{{- range .Tiles}}
{{- if eq .Type "TITLE"}}
  <div class="tile tile-title" style="{{.Style}}">{{.Label}}</div>
{{- else if eq .Type "SECTION_HEADER"}}
  <div class="tile tile-header" style="{{.Style}}">{{.Label}}</div>
{{- else if eq .Type "ITEM"}}
  <div class="tile tile-item" style="{{.Style}}">
    {{- if .Image}}<img class="thumb" src="{{.Image}}" alt="">{{end}}
    <div class="name">{{.Label}}</div>
    {{- if .Desc}}<div class="desc">{{.Desc}}</div>{{end}}
    <div class="price">{{.Price}}</div>
  </div>
{{- else}}
  <div class="tile tile-filler" style="{{.Style}}">{{.Texture}}</div>
{{- end}}
{{- end}}
</div>
{{- end}}
</body>
</html>
`))

// RenderGridHTML renders a V1 layout as a static HTML snapshot.
func RenderGridHTML(g *grid.GridLayout, opts ...Option) (HTMLResult, error) {
	r := newRenderer(opts...)

	page := htmlPage{
		Style: template.CSS(fmt.Sprintf("width: %.1fpx; height: %.1fpx;", g.Region.Width, g.Region.Height)),
	}
	for _, tile := range g.Tiles() {
		page.Tiles = append(page.Tiles, r.htmlTile(tile, 0, 0))
	}

	return r.renderHTML(g.Region.Width, []htmlPage{page})
}

// RenderPagesHTML renders a V2 paginated layout, one block per page.
func RenderPagesHTML(ld *grid.LayoutDocument, opts ...Option) (HTMLResult, error) {
	r := newRenderer(opts...)

	pages := make([]htmlPage, 0, len(ld.Pages))
	for _, p := range ld.Pages {
		hp := htmlPage{
			Style: template.CSS(fmt.Sprintf("width: %.1fpx; height: %.1fpx;", p.Width, p.Height)),
		}
		for _, tile := range p.Tiles {
			hp.Tiles = append(hp.Tiles, r.htmlTile(tile, ld.PageSpec.Margin, ld.PageSpec.Margin))
		}
		pages = append(pages, hp)
	}

	return r.renderHTML(ld.PageSpec.Width, pages)
}

func (r *renderer) renderHTML(width float64, pages []htmlPage) (HTMLResult, error) {
	title := "Menu"
	if r.doc != nil && r.doc.Title != "" {
		title = r.doc.Title
	}

	var buf bytes.Buffer
	err := htmlTmpl.Execute(&buf, htmlData{
		Title:     title,
		Palette:   r.palette,
		BodyWidth: width,
		Pages:     pages,
	})
	if err != nil {
		return HTMLResult{}, errors.Wrap(errors.ErrCodeGenerationFailed, err, "html render failed")
	}
	html := buf.String()
	return HTMLResult{HTML: html, Size: len(html), Timestamp: time.Now().UTC()}, nil
}

func (r *renderer) htmlTile(t grid.Tile, originX, originY float64) htmlTile {
	ht := htmlTile{
		Type:  t.Type,
		Label: t.Label,
		Style: template.CSS(fmt.Sprintf("left: %.1fpx; top: %.1fpx; width: %.1fpx; height: %.1fpx;",
			t.X+originX, t.Y+originY, t.Width, t.Height)),
	}
	switch t.Type {
	case grid.TileItem:
		if it := r.items[t.ItemID]; it != nil {
			if r.doc != nil {
				ht.Price = r.doc.Currency.FormatPrice(it.Price)
			} else {
				ht.Price = menu.DefaultCurrency.FormatPrice(it.Price)
			}
			ht.Desc = it.Description
			if it.HasImage() && !r.textOnly {
				ht.Image = it.ImageRef
			}
		}
	case grid.TileFiller:
		if r.textures {
			ht.Texture = styles.TextureFor(t.Style).Icon
		}
	}
	return ht
}
