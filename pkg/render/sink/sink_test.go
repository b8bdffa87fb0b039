package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/layout/grid"
	"github.com/platewise/menupress/pkg/menu"
)

func testDoc() *menu.MenuDocument {
	return &menu.MenuDocument{
		Title:    "Harbor Kitchen",
		Currency: menu.DefaultCurrency,
		Sections: []menu.Section{
			{
				ID:   "sec-mains",
				Name: "Mains",
				Items: []menu.Item{
					{ID: "item-1", Name: "Fish & Chips", Description: "Beer battered cod", Price: 14.5},
					{ID: "item-2", Name: "Café au Lait Braise", Price: 18, ImageRef: "https://img.example/braise.jpg"},
					{ID: "item-3", Name: "Garden <Green> Bowl", Price: 11.25},
				},
			},
		},
	}
}

func testGrid(t *testing.T, doc *menu.MenuDocument) *grid.GridLayout {
	t.Helper()
	preset, err := layout.PresetByID("balanced-standard")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	g, err := grid.Generate(doc, preset, layout.ContextDesktop, grid.Options{ShowTitle: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return g
}

func testPages(t *testing.T, doc *menu.MenuDocument) *grid.LayoutDocument {
	t.Helper()
	preset, err := layout.PresetByID("balanced-standard")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	ld, err := grid.Paginate(doc, preset, layout.DefaultPageSpec(), layout.ContextPrint, grid.Options{ShowTitle: true})
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	return ld
}

func TestRenderGridSVGEscapesMarkup(t *testing.T) {
	doc := testDoc()
	svg := RenderGridSVG(testGrid(t, doc), WithDocument(doc))

	s := string(svg)
	if !strings.Contains(s, "Fish &amp; Chips") {
		t.Error("ampersand not escaped in SVG output")
	}
	if strings.Contains(s, "<Green>") {
		t.Error("angle brackets not escaped in SVG output")
	}
	if !strings.Contains(s, "Café au Lait") {
		t.Error("non-ASCII text should pass through unescaped")
	}
}

func TestRenderGridSVGStructure(t *testing.T) {
	doc := testDoc()
	g := testGrid(t, doc)
	svg := RenderGridSVG(g, WithDocument(doc), WithPalette("ocean"))

	s := string(svg)
	if !strings.HasPrefix(s, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("missing svg root element: %.80s", s)
	}
	if !strings.HasSuffix(s, "</svg>\n") {
		t.Error("svg not closed")
	}
	if !strings.Contains(s, "Harbor Kitchen") {
		t.Error("title tile missing from output")
	}
	if !strings.Contains(s, "Mains") {
		t.Error("section header missing from output")
	}
	if !strings.Contains(s, "$14.50") {
		t.Error("formatted price missing from output")
	}
	if !strings.Contains(s, "braise.jpg") {
		t.Error("item image missing from output")
	}
}

func TestRenderGridSVGTextOnly(t *testing.T) {
	doc := testDoc()
	svg := RenderGridSVG(testGrid(t, doc), WithDocument(doc), WithTextOnly())
	if strings.Contains(string(svg), "<image") {
		t.Error("text-only output should not embed images")
	}
}

func TestRenderGridSVGDeterministic(t *testing.T) {
	doc := testDoc()
	g := testGrid(t, doc)
	a := RenderGridSVG(g, WithDocument(doc))
	b := RenderGridSVG(g, WithDocument(doc))
	if !bytes.Equal(a, b) {
		t.Error("repeated renders differ byte for byte")
	}
}

func TestRenderPagesSVG(t *testing.T) {
	doc := testDoc()
	ld := testPages(t, doc)
	svg := RenderPagesSVG(ld, WithDocument(doc))

	if n := strings.Count(string(svg), `stroke-width="0.5"`); n != len(ld.Pages) {
		t.Errorf("page frames = %d, want %d", n, len(ld.Pages))
	}
}

func TestRenderGridHTMLEscaping(t *testing.T) {
	doc := testDoc()
	res, err := RenderGridHTML(testGrid(t, doc), WithDocument(doc))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(res.HTML, "Fish &amp; Chips") {
		t.Error("ampersand not escaped in HTML output")
	}
	if strings.Contains(res.HTML, "<Green>") {
		t.Error("angle brackets not escaped in HTML output")
	}
	if !strings.Contains(res.HTML, "Café au Lait") {
		t.Error("non-ASCII text should pass through unescaped")
	}
}

func TestRenderGridHTMLResult(t *testing.T) {
	doc := testDoc()
	res, err := RenderGridHTML(testGrid(t, doc), WithDocument(doc))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Size != len(res.HTML) {
		t.Errorf("size = %d, want %d", res.Size, len(res.HTML))
	}
	if res.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if !strings.Contains(res.HTML, "<title>Harbor Kitchen</title>") {
		t.Error("document title missing")
	}
	if !strings.Contains(res.HTML, "$14.50") {
		t.Error("formatted price missing")
	}
}

func TestRenderPagesHTML(t *testing.T) {
	doc := testDoc()
	ld := testPages(t, doc)
	res, err := RenderPagesHTML(ld, WithDocument(doc))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := strings.Count(res.HTML, `class="page"`); n != len(ld.Pages) {
		t.Errorf("page blocks = %d, want %d", n, len(ld.Pages))
	}
}

func TestRenderGridJSONRoundTrip(t *testing.T) {
	doc := testDoc()
	g := testGrid(t, doc)
	data, err := RenderGridJSON(g)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded grid.GridLayout
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalTiles != g.TotalTiles {
		t.Errorf("total tiles = %d, want %d", decoded.TotalTiles, g.TotalTiles)
	}
}

func TestRenderGridSVGWithoutDocument(t *testing.T) {
	doc := testDoc()
	g := testGrid(t, doc)
	// Geometry-only render still works, just without prices or images.
	svg := RenderGridSVG(g)
	if !strings.Contains(string(svg), "Fish &amp; Chips") {
		t.Error("tile labels should render without a source document")
	}
}
