package grid

import (
	"fmt"

	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/menu"
)

// Options control generation behavior shared by both engine versions.
type Options struct {
	// ShowTitle places a TITLE tile when the document has a title.
	ShowTitle bool

	// PageSpec sizes the frame under the print context. The zero value
	// falls back to the default page.
	PageSpec layout.PageSpec
}

// Generate packs a document into a single-region V1 grid for the given
// context. Sections are placed in document order: a full-width header tile,
// then the section's items row-major at the preset's column count for the
// context. The region's height grows to fit; widths never exceed the frame.
func Generate(doc *menu.MenuDocument, preset layout.Preset, ctx string, opts Options) (*GridLayout, error) {
	if err := layout.ValidateContext(ctx); err != nil {
		return nil, err
	}

	frameWidth := layout.ViewportWidth(ctx)
	if ctx == layout.ContextPrint {
		spec := opts.PageSpec
		if spec.Width == 0 {
			spec = layout.DefaultPageSpec()
		}
		frameWidth = spec.Width - 2*spec.Margin
	}

	cols := preset.Columns.For(ctx)
	g := &GridLayout{
		Context:  ctx,
		PresetID: preset.ID,
		Columns:  cols,
		Region:   Region{ID: "main", Width: frameWidth},
	}

	m := newMetrics(preset, frameWidth, cols)
	y := 0.0

	if opts.ShowTitle && doc.Title != "" {
		t := Tile{
			ID:       "title",
			Type:     TileTitle,
			X:        0,
			Y:        y,
			Width:    frameWidth,
			Height:   m.titleH,
			RegionID: g.Region.ID,
			Label:    doc.Title,
		}
		g.Title = &t
		g.TotalTiles++
		y += m.titleH + Gutter
	}

	for si := range doc.Sections {
		sec := &doc.Sections[si]
		st := SectionTiles{SectionID: sec.ID, Name: sec.Name}

		st.Tiles = append(st.Tiles, Tile{
			ID:        fmt.Sprintf("hdr-%s", sec.ID),
			Type:      TileSectionHeader,
			X:         0,
			Y:         y,
			Width:     frameWidth,
			Height:    m.headerH,
			RegionID:  g.Region.ID,
			SectionID: sec.ID,
			Label:     sec.Name,
		})
		g.TotalTiles++
		y += m.headerH + Gutter

		for ii := range sec.Items {
			it := &sec.Items[ii]
			col := ii % cols
			row := ii / cols
			st.Tiles = append(st.Tiles, Tile{
				ID:        fmt.Sprintf("item-%s", it.ID),
				Type:      TileItem,
				X:         float64(col) * (m.tileW + Gutter),
				Y:         y + float64(row)*(m.itemH+Gutter),
				Width:     m.tileW,
				Height:    m.itemH,
				RegionID:  g.Region.ID,
				SectionID: sec.ID,
				ItemID:    it.ID,
				Label:     it.Name,
			})
			g.TotalTiles++
		}

		rows := (len(sec.Items) + cols - 1) / cols
		if rows > 0 {
			y += float64(rows)*(m.itemH+Gutter) - Gutter
			y += Gutter
		}

		g.Sections = append(g.Sections, st)
	}

	if y > Gutter {
		y -= Gutter // no trailing gap below the last row
	}
	g.Region.Height = y

	if err := checkBounds(g.Region, g.Tiles()); err != nil {
		return nil, err
	}
	return g, nil
}

// metrics holds the per-generation derived dimensions.
type metrics struct {
	tileW   float64
	itemH   float64
	titleH  float64
	headerH float64
}

func newMetrics(preset layout.Preset, frameWidth float64, cols int) metrics {
	tileW := (frameWidth - float64(cols-1)*Gutter) / float64(cols)
	itemH := tileW / preset.TileAspect
	if preset.MetadataMode == layout.MetadataAdjacent {
		itemH += MetaBlockHeight * preset.TextScale
	}
	return metrics{
		tileW:   tileW,
		itemH:   itemH,
		titleH:  TitleHeight * preset.TextScale,
		headerH: HeaderHeight * preset.TextScale,
	}
}

// checkBounds enforces the containment invariant as a generation-time
// defense. A violation is an engine defect, not a data problem.
func checkBounds(r Region, tiles []Tile) error {
	for i := range tiles {
		if !r.Contains(tiles[i]) {
			return generationBugf("tile %s (%.2f,%.2f %.2fx%.2f) escapes region %s (%.2fx%.2f)",
				tiles[i].ID, tiles[i].X, tiles[i].Y, tiles[i].Width, tiles[i].Height,
				r.ID, r.Width, r.Height)
		}
	}
	return nil
}
