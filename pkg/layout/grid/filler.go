package grid

import (
	"fmt"
	"math"
)

// fillerStyles are the cosmetic tags cycled across filler tiles. The choice
// depends only on the filler's ordinal, never on menu content.
var fillerStyles = []string{
	"accent-dots",
	"leaf-motif",
	"cutlery-icon",
	"wave-pattern",
}

// sameRow tolerates float noise when matching tiles to a row.
const rowEps = 0.5

// InsertFillers appends FILLER tiles into each section's incomplete trailing
// row. The operation is additive-only: existing tiles are never moved or
// resized, and a grid whose rows are all exact column multiples is returned
// unchanged. Returns the number of fillers added.
func InsertFillers(g *GridLayout) int {
	if g.Columns < 2 {
		return 0
	}

	added := 0
	for si := range g.Sections {
		sec := &g.Sections[si]
		last := trailingRow(sec.Tiles)
		if last == nil {
			continue
		}
		missing := g.Columns - len(last.tiles)
		if missing <= 0 {
			continue
		}
		ref := last.tiles[len(last.tiles)-1]
		for k := 0; k < missing; k++ {
			col := len(last.tiles) + k
			sec.Tiles = append(sec.Tiles, Tile{
				ID:        fmt.Sprintf("fill-%s-%d", sec.SectionID, k+1),
				Type:      TileFiller,
				X:         float64(col) * (ref.Width + Gutter),
				Y:         ref.Y,
				Width:     ref.Width,
				Height:    ref.Height,
				RegionID:  ref.RegionID,
				SectionID: sec.SectionID,
				Style:     fillerStyles[added%len(fillerStyles)],
			})
			added++
			g.TotalTiles++
		}
	}
	return added
}

// InsertPageFillers appends FILLER tiles into incomplete trailing item rows
// of a paginated layout. A section's trailing row lives on the last page the
// section appears on; rows completed by pagination carry no fillers.
func InsertPageFillers(d *LayoutDocument) int {
	if d.Columns < 2 {
		return 0
	}

	added := 0
	for pi := range d.Pages {
		page := &d.Pages[pi]
		for _, sectionID := range trailingSections(d, pi) {
			var items []Tile
			for i := range page.Tiles {
				if page.Tiles[i].Type == TileItem && page.Tiles[i].SectionID == sectionID {
					items = append(items, page.Tiles[i])
				}
			}
			last := trailingRow(items)
			if last == nil {
				continue
			}
			missing := d.Columns - len(last.tiles)
			if missing <= 0 {
				continue
			}
			ref := last.tiles[len(last.tiles)-1]
			for k := 0; k < missing; k++ {
				col := len(last.tiles) + k
				page.Tiles = append(page.Tiles, Tile{
					ID:        fmt.Sprintf("fill-%s-p%d-%d", sectionID, pi, k+1),
					Type:      TileFiller,
					X:         float64(col) * (ref.Width + Gutter),
					Y:         ref.Y,
					Width:     ref.Width,
					Height:    ref.Height,
					RegionID:  ref.RegionID,
					SectionID: sectionID,
					Style:     fillerStyles[added%len(fillerStyles)],
				})
				added++
				d.TotalTiles++
			}
		}
	}
	return added
}

// row is a group of item tiles sharing a Y coordinate.
type row struct {
	y     float64
	tiles []Tile
}

// trailingRow returns the bottom-most row of ITEM tiles, or nil when there
// are no items.
func trailingRow(tiles []Tile) *row {
	var r *row
	for i := range tiles {
		t := tiles[i]
		if t.Type != TileItem {
			continue
		}
		switch {
		case r == nil || t.Y > r.y+rowEps:
			r = &row{y: t.Y, tiles: []Tile{t}}
		case math.Abs(t.Y-r.y) <= rowEps:
			r.tiles = append(r.tiles, t)
		}
	}
	return r
}

// trailingSections lists the sections whose last item tile lives on page pi,
// in first-appearance order.
func trailingSections(d *LayoutDocument, pi int) []string {
	lastPage := map[string]int{}
	var order []string
	for p := range d.Pages {
		for i := range d.Pages[p].Tiles {
			t := &d.Pages[p].Tiles[i]
			if t.Type != TileItem {
				continue
			}
			if _, seen := lastPage[t.SectionID]; !seen {
				order = append(order, t.SectionID)
			}
			lastPage[t.SectionID] = p
		}
	}
	var out []string
	for _, id := range order {
		if lastPage[id] == pi {
			out = append(out, id)
		}
	}
	return out
}
