package grid

import (
	"encoding/json"
	"testing"

	"github.com/platewise/menupress/pkg/layout"
)

func TestInsertFillersCompletesTrailingRow(t *testing.T) {
	// balanced desktop = 3 columns; 5 items leave 1 empty cell.
	doc := menuDoc(sectionOf("a", 5))
	g, err := Generate(doc, balanced(t), layout.ContextDesktop, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	before := g.TotalTiles
	snapshot, _ := json.Marshal(g.Tiles())

	added := InsertFillers(g)
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if g.TotalTiles != before+1 {
		t.Errorf("TotalTiles = %d, want %d", g.TotalTiles, before+1)
	}

	// additive-only: the original tiles are untouched
	after, _ := json.Marshal(g.Tiles()[:before])
	if string(snapshot) != string(after) {
		t.Error("existing tiles were displaced or resized")
	}

	// fillers stay inside the region and carry a style tag
	for _, tile := range g.Tiles() {
		if tile.Type != TileFiller {
			continue
		}
		if !g.Region.Contains(tile) {
			t.Errorf("filler %s outside region", tile.ID)
		}
		if tile.Style == "" {
			t.Errorf("filler %s has no style tag", tile.ID)
		}
	}
}

func TestInsertFillersFullGridAddsNothing(t *testing.T) {
	// 6 items at 3 columns: both rows exactly full.
	doc := menuDoc(sectionOf("a", 6))
	g, err := Generate(doc, balanced(t), layout.ContextDesktop, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	before := g.TotalTiles
	if added := InsertFillers(g); added != 0 {
		t.Errorf("full grid got %d fillers", added)
	}
	if g.TotalTiles != before {
		t.Errorf("TotalTiles changed on full grid")
	}
}

func TestInsertFillersSingleColumnNoop(t *testing.T) {
	doc := menuDoc(sectionOf("a", 3))
	g, err := Generate(doc, balanced(t), layout.ContextMobile, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if g.Columns != 1 {
		t.Skipf("expected 1 mobile column, got %d", g.Columns)
	}
	if added := InsertFillers(g); added != 0 {
		t.Errorf("single-column grid got %d fillers", added)
	}
}

func TestInsertFillersPerSection(t *testing.T) {
	// two sections each leaving gaps: 4 items and 2 items at 3 columns
	doc := menuDoc(sectionOf("a", 4), sectionOf("b", 2))
	g, err := Generate(doc, balanced(t), layout.ContextDesktop, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if added := InsertFillers(g); added != 3 { // 2 for section a, 1 for section b
		t.Errorf("added = %d, want 3", added)
	}
}

func TestInsertFillersEmptySectionSkipped(t *testing.T) {
	doc := menuDoc(sectionOf("a", 3), menuDoc(sectionOf("x", 0)).Sections[0])
	g, err := Generate(doc, balanced(t), layout.ContextDesktop, Options{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if added := InsertFillers(g); added != 0 {
		t.Errorf("itemless section should get no fillers, got %d", added)
	}
}

func TestInsertFillersDeterministicStyles(t *testing.T) {
	build := func() *GridLayout {
		g, err := Generate(menuDoc(sectionOf("a", 5), sectionOf("b", 1)), balanced(t),
			layout.ContextDesktop, Options{})
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		InsertFillers(g)
		return g
	}
	a, _ := json.Marshal(build())
	b, _ := json.Marshal(build())
	if string(a) != string(b) {
		t.Error("filler styles not deterministic")
	}
}

func TestInsertPageFillers(t *testing.T) {
	doc := menuDoc(sectionOf("a", 5)) // print: 2 columns → 1 gap in trailing row
	ld, err := Paginate(doc, balanced(t), layout.DefaultPageSpec(), layout.ContextPrint, Options{})
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	before := ld.TotalTiles

	added := InsertPageFillers(ld)
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if ld.TotalTiles != before+1 {
		t.Errorf("TotalTiles = %d, want %d", ld.TotalTiles, before+1)
	}
	for _, page := range ld.Pages {
		for _, tile := range page.Tiles {
			if !page.Region.Contains(tile) {
				t.Errorf("tile %s outside page %d region", tile.ID, page.Index)
			}
		}
	}
}

func TestInsertPageFillersOnlyOnTrailingPage(t *testing.T) {
	doc := menuDoc(sectionOf("a", 60)) // spans multiple print pages
	ld, err := Paginate(doc, balanced(t), layout.DefaultPageSpec(), layout.ContextPrint, Options{})
	if err != nil {
		t.Fatalf("Paginate() error = %v", err)
	}
	InsertPageFillers(ld)

	lastItemPage := -1
	for _, page := range ld.Pages {
		for _, tile := range page.Tiles {
			if tile.Type == TileItem && page.Index > lastItemPage {
				lastItemPage = page.Index
			}
		}
	}
	for _, page := range ld.Pages {
		for _, tile := range page.Tiles {
			if tile.Type == TileFiller && page.Index != lastItemPage {
				t.Errorf("filler %s on page %d, section trails on page %d",
					tile.ID, page.Index, lastItemPage)
			}
		}
	}
}
