package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	menuio "github.com/platewise/menupress/pkg/io"
	"github.com/platewise/menupress/pkg/layout/grid"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/pipeline"
)

// Preview styles
var (
	previewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	previewHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// previewCommand creates the preview command for interactive page browsing.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{Engine: pipeline.EngineV2}

	cmd := &cobra.Command{
		Use:   "preview [menu.json]",
		Short: "Browse a paginated layout interactively",
		Long: `Browse a paginated layout interactively.

The preview command computes a paginated layout and opens a terminal browser
over its pages. Each page shows the placed tiles with their geometry, so
pagination and filler decisions can be inspected without rendering artifacts.

Navigate with arrow keys, switch pages with left/right, quit with q.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Context, "context", "c", "", "display context (default: print)")
	cmd.Flags().StringVar(&opts.PresetID, "preset", "", "explicit preset, skips automatic selection")
	cmd.Flags().StringVar(&opts.TemplateID, "template", "", "template to check and lay out with")
	cmd.Flags().BoolVar(&opts.SkipFiller, "no-filler", false, "skip filler tiles in incomplete rows")
	cmd.Flags().BoolVar(&opts.HideTitle, "no-title", false, "omit the menu title band")
	cmd.Flags().Float64Var(&opts.PageWidth, "page-width", 0, "page width in points")
	cmd.Flags().Float64Var(&opts.PageHeight, "page-height", 0, "page height in points")
	cmd.Flags().Float64Var(&opts.PageMargin, "page-margin", 0, "page margin in points")

	return cmd
}

// runPreview computes a paginated layout and starts the page browser.
func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	doc, err := menuio.ImportMenu(input)
	if err != nil {
		return err
	}

	tuning, err := c.loadTuning()
	if err != nil {
		return err
	}
	applyTuning(&opts, tuning)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Document = doc
	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if result.Pages == nil {
		return fmt.Errorf("preview requires the paginated engine")
	}

	m := NewPagePreviewModel(result.Pages, doc, result.Preset.ID)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// PagePreviewModel is the bubbletea model for browsing layout pages.
type PagePreviewModel struct {
	Doc      *grid.LayoutDocument
	PresetID string
	Page     int
	Cursor   int
	Offset   int
	Height   int

	items map[string]*menu.Item
}

// NewPagePreviewModel creates a page browser over the given layout document.
func NewPagePreviewModel(doc *grid.LayoutDocument, m *menu.MenuDocument, presetID string) PagePreviewModel {
	items := make(map[string]*menu.Item)
	if m != nil {
		for si := range m.Sections {
			for ii := range m.Sections[si].Items {
				it := &m.Sections[si].Items[ii]
				items[it.ID] = it
			}
		}
	}
	return PagePreviewModel{
		Doc:      doc,
		PresetID: presetID,
		Height:   15,
		items:    items,
	}
}

func (m PagePreviewModel) Init() tea.Cmd {
	return nil
}

func (m PagePreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Page > 0 {
				m.Page--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l":
			if m.Page < len(m.Doc.Pages)-1 {
				m.Page++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Doc.Pages[m.Page].Tiles)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PagePreviewModel) View() string {
	var b strings.Builder

	page := m.Doc.Pages[m.Page]

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Page %d/%d", m.Page+1, len(m.Doc.Pages))))
	b.WriteString("  ")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("%s · %d columns · %.0f×%.0fpt",
		m.PresetID, m.Doc.Columns, page.Width, page.Height)))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ page  ↑/↓ tile  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(page.Tiles) {
		end = len(page.Tiles)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := page.Tiles[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		pos := fmt.Sprintf("%.0f,%.0f", t.X, t.Y)
		size := fmt.Sprintf("%.0f×%.0f", t.Width, t.Height)
		rows = append(rows, []string{cursor, tileKind(t), m.tileLabel(t), pos, size})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tile", "Content", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return previewHeaderStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(page.Tiles) {
				return lipgloss.NewStyle()
			}
			tile := page.Tiles[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 3 || col == 4 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if tile.Type == grid.TileItem {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if tile.Type == grid.TileFiller {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  [%d/%d tiles]", m.Cursor+1, len(page.Tiles))))

	return b.String()
}

// tileLabel resolves the display text for a tile, preferring the source item.
func (m PagePreviewModel) tileLabel(t grid.Tile) string {
	switch t.Type {
	case grid.TileItem:
		if it, ok := m.items[t.ItemID]; ok {
			return it.Name
		}
		return t.ItemID
	case grid.TileFiller:
		if t.Style != "" {
			return t.Style
		}
		return "—"
	default:
		return t.Label
	}
}

func tileKind(t grid.Tile) string {
	switch t.Type {
	case grid.TileTitle:
		return "title"
	case grid.TileSectionHeader:
		return "header"
	case grid.TileItem:
		return "item"
	case grid.TileFiller:
		return "filler"
	default:
		return strings.ToLower(t.Type)
	}
}
