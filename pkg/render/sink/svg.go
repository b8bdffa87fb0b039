// Package sink renders computed layouts into concrete output formats.
//
// Every sink consumes tile geometry read-only: coordinates written to SVG,
// HTML, or JSON are exactly the generator's numbers, so the live view, the
// static snapshot, and the rasterized documents cannot drift apart.
package sink

import (
	"bytes"
	"fmt"

	"github.com/platewise/menupress/pkg/layout/grid"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/render/styles"
)

// Image fit modes, matching the caller's imageMode option.
const (
	ImageModeStretch = "stretch"
	ImageModeContain = "contain"
	ImageModeCover   = "cover"
)

const pageGap = 24.0

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	doc       *menu.MenuDocument
	palette   styles.Palette
	textures  bool
	textOnly  bool
	imageMode string
	items     map[string]*menu.Item
}

// WithDocument supplies the source document so item tiles can show prices,
// descriptions and images. Without it tiles render labels only.
func WithDocument(doc *menu.MenuDocument) Option {
	return func(r *renderer) { r.doc = doc }
}

// WithPalette selects a color palette by ID.
func WithPalette(id string) Option {
	return func(r *renderer) { r.palette = styles.PaletteByID(id) }
}

// WithTextures enables filler tile textures.
func WithTextures() Option { return func(r *renderer) { r.textures = true } }

// WithTextOnly suppresses images even for items that have them.
func WithTextOnly() Option { return func(r *renderer) { r.textOnly = true } }

// WithImageMode sets how item images fit their frame.
func WithImageMode(mode string) Option {
	return func(r *renderer) { r.imageMode = mode }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		palette:   styles.PaletteByID(styles.DefaultPaletteID),
		imageMode: ImageModeCover,
	}
	for _, opt := range opts {
		opt(&r)
	}
	r.items = map[string]*menu.Item{}
	if r.doc != nil {
		for si := range r.doc.Sections {
			for ii := range r.doc.Sections[si].Items {
				it := &r.doc.Sections[si].Items[ii]
				r.items[it.ID] = it
			}
		}
	}
	return r
}

// RenderGridSVG renders a V1 single-region layout.
func RenderGridSVG(g *grid.GridLayout, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		g.Region.Width, g.Region.Height, g.Region.Width, g.Region.Height)
	buf.WriteString(styles.PatternDefs(r.palette))
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		g.Region.Width, g.Region.Height, r.palette.Background)

	for _, tile := range g.Tiles() {
		r.renderTile(&buf, tile, 0, 0)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderPagesSVG renders a V2 paginated layout as a vertical strip of pages.
func RenderPagesSVG(ld *grid.LayoutDocument, opts ...Option) []byte {
	r := newRenderer(opts...)

	totalH := 0.0
	for range ld.Pages {
		totalH += ld.PageSpec.Height + pageGap
	}
	if totalH > 0 {
		totalH -= pageGap
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		ld.PageSpec.Width, totalH, ld.PageSpec.Width, totalH)
	buf.WriteString(styles.PatternDefs(r.palette))

	offsetY := 0.0
	for _, page := range ld.Pages {
		fmt.Fprintf(&buf, `  <rect x="0" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
			offsetY, page.Width, page.Height, r.palette.Background, r.palette.Muted)

		for _, tile := range page.Tiles {
			r.renderTile(&buf, tile, ld.PageSpec.Margin, offsetY+ld.PageSpec.Margin)
		}
		offsetY += ld.PageSpec.Height + pageGap
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderTile draws one tile at its region-relative coordinates shifted by
// the region's page origin.
func (r *renderer) renderTile(buf *bytes.Buffer, t grid.Tile, originX, originY float64) {
	x, y := t.X+originX, t.Y+originY

	switch t.Type {
	case grid.TileTitle:
		size := styles.FontSize(t.Width, t.Height, len([]rune(t.Label)))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="Georgia, serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
			x+t.Width/2, y+t.Height/2, size,
			r.palette.Text, styles.EscapeXML(styles.TruncateLabel(t.Label, t.Width, size)))

	case grid.TileSectionHeader:
		size := styles.FontSize(t.Width, t.Height, len([]rune(t.Label))) * 0.8
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" dominant-baseline="central" font-family="Georgia, serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
			x, y+t.Height/2, size,
			r.palette.Accent, styles.EscapeXML(styles.TruncateLabel(t.Label, t.Width, size)))
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			x, y+t.Height, x+t.Width, y+t.Height, r.palette.Accent)

	case grid.TileItem:
		r.renderItemTile(buf, t, x, y)

	case grid.TileFiller:
		r.renderFillerTile(buf, t, x, y)
	}
}

func (r *renderer) renderItemTile(buf *bytes.Buffer, t grid.Tile, x, y float64) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s"/>`+"\n",
		x, y, t.Width, t.Height, r.palette.Surface)

	it := r.items[t.ItemID]
	textTop := y

	if it != nil && it.HasImage() && !r.textOnly {
		imgH := t.Height * 0.55
		fmt.Fprintf(buf, `  <image x="%.1f" y="%.1f" width="%.1f" height="%.1f" href="%s" preserveAspectRatio="%s"/>`+"\n",
			x, y, t.Width, imgH, styles.EscapeXML(it.ImageRef), aspectFor(r.imageMode))
		textTop = y + imgH
	}

	nameSize := styles.FontSize(t.Width, t.Height*0.25, len([]rune(t.Label)))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="Helvetica, sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		x+6, textTop+nameSize+6, nameSize,
		r.palette.Text, styles.EscapeXML(styles.TruncateLabel(t.Label, t.Width-12, nameSize)))

	if it != nil {
		price := menu.DefaultCurrency.FormatPrice(it.Price)
		if r.doc != nil {
			price = r.doc.Currency.FormatPrice(it.Price)
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="end" font-family="Helvetica, sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
			x+t.Width-6, y+t.Height-8, nameSize*0.9,
			r.palette.Accent, styles.EscapeXML(price))

		if it.HasDescription() {
			descSize := nameSize * 0.75
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="Helvetica, sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
				x+6, textTop+nameSize+10+descSize,
				descSize, r.palette.Muted,
				styles.EscapeXML(styles.TruncateLabel(it.Description, t.Width-12, descSize)))
		}
	}
}

func (r *renderer) renderFillerTile(buf *bytes.Buffer, t grid.Tile, x, y float64) {
	fill := r.palette.Surface
	tex := styles.TextureFor(t.Style)
	if r.textures && tex.PatternID != "" {
		fill = fmt.Sprintf("url(#%s)", tex.PatternID)
	}
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" opacity="0.8"/>`+"\n",
		x, y, t.Width, t.Height, fill)
	if r.textures && tex.Icon != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%.1f" fill="%s" opacity="0.5">%s</text>`+"\n",
			x+t.Width/2, y+t.Height/2, min(t.Width, t.Height)*0.3,
			r.palette.Muted, styles.EscapeXML(tex.Icon))
	}
}

func aspectFor(mode string) string {
	switch mode {
	case ImageModeStretch:
		return "none"
	case ImageModeContain:
		return "xMidYMid meet"
	default:
		return "xMidYMid slice"
	}
}
