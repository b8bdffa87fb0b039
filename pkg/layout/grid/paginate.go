package grid

import (
	"fmt"

	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/menu"
)

func generationBugf(format string, args ...any) error {
	return errors.New(errors.ErrCodeGenerationFailed, format, args...)
}

// Paginate packs a document into fixed-size pages (V2 output). Sections are
// carried across page boundaries rather than split: when a row of items does
// not fit in the remaining vertical space, the current page closes and the
// row opens the next page under a repeated flow. A section header is never
// left orphaned at the bottom of a page: if the header plus one item row
// does not fit, both move to the next page.
func Paginate(doc *menu.MenuDocument, preset layout.Preset, spec layout.PageSpec, ctx string, opts Options) (*LayoutDocument, error) {
	if err := layout.ValidateContext(ctx); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	cols := preset.Columns.For(ctx)
	regionW := spec.Width - 2*spec.Margin
	regionH := spec.Height - 2*spec.Margin
	m := newMetrics(preset, regionW, cols)

	if m.itemH > regionH {
		return nil, generationBugf(
			"item tile height %.2f exceeds page content height %.2f", m.itemH, regionH)
	}

	ld := &LayoutDocument{
		PageSpec: spec,
		Context:  ctx,
		PresetID: preset.ID,
		Columns:  cols,
	}

	p := newPaginator(ld, spec, regionW, regionH)

	if opts.ShowTitle && doc.Title != "" {
		p.place(Tile{
			ID:     "title",
			Type:   TileTitle,
			Width:  regionW,
			Height: m.titleH,
			Label:  doc.Title,
		}, m.titleH)
	}

	for si := range doc.Sections {
		sec := &doc.Sections[si]

		// Keep the header attached to the first item row.
		need := m.headerH + Gutter
		if len(sec.Items) > 0 {
			need += m.itemH
		}
		p.ensure(need)

		p.place(Tile{
			ID:        fmt.Sprintf("hdr-%s", sec.ID),
			Type:      TileSectionHeader,
			Width:     regionW,
			Height:    m.headerH,
			SectionID: sec.ID,
			Label:     sec.Name,
		}, m.headerH)

		col := 0
		for ii := range sec.Items {
			it := &sec.Items[ii]
			if col == 0 {
				p.ensure(m.itemH)
			}
			p.placeAt(Tile{
				ID:        fmt.Sprintf("item-%s", it.ID),
				Type:      TileItem,
				X:         float64(col) * (m.tileW + Gutter),
				Width:     m.tileW,
				Height:    m.itemH,
				SectionID: sec.ID,
				ItemID:    it.ID,
				Label:     it.Name,
			})
			col++
			if col == cols || ii == len(sec.Items)-1 {
				p.advance(m.itemH)
				col = 0
			}
		}
	}

	p.close()

	for i := range ld.Pages {
		if err := checkBounds(ld.Pages[i].Region, ld.Pages[i].Tiles); err != nil {
			return nil, err
		}
	}
	return ld, nil
}

// paginator tracks the vertical cursor on the current page and opens new
// pages as rows run out of space.
type paginator struct {
	doc     *LayoutDocument
	spec    layout.PageSpec
	regionW float64
	regionH float64
	page    *Page
	y       float64
}

func newPaginator(doc *LayoutDocument, spec layout.PageSpec, regionW, regionH float64) *paginator {
	p := &paginator{doc: doc, spec: spec, regionW: regionW, regionH: regionH}
	p.open()
	return p
}

func (p *paginator) open() {
	idx := len(p.doc.Pages)
	p.doc.Pages = append(p.doc.Pages, Page{
		Index:  idx,
		Width:  p.spec.Width,
		Height: p.spec.Height,
		Region: Region{
			ID:     fmt.Sprintf("page-%d", idx),
			Width:  p.regionW,
			Height: p.regionH,
		},
	})
	p.page = &p.doc.Pages[idx]
	p.y = 0
}

// ensure opens a new page unless height more layout units fit below the
// cursor.
func (p *paginator) ensure(height float64) {
	if p.y+height > p.regionH+BoundsTolerance {
		p.open()
	}
}

// place positions a full-width tile at the cursor and advances past it.
func (p *paginator) place(t Tile, height float64) {
	p.ensure(height)
	p.placeAt(t)
	p.advance(height)
}

// placeAt positions a tile at the cursor's row without advancing.
func (p *paginator) placeAt(t Tile) {
	t.Y = p.y
	t.RegionID = p.page.Region.ID
	p.page.Tiles = append(p.page.Tiles, t)
	p.doc.TotalTiles++
}

// advance moves the cursor below a row of the given height.
func (p *paginator) advance(height float64) {
	p.y += height + Gutter
}

// close ends placement; pages keep their fixed geometry.
func (p *paginator) close() {
	p.page = nil
}
