package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	menuio "github.com/platewise/menupress/pkg/io"
	"github.com/platewise/menupress/pkg/menu"
	"github.com/platewise/menupress/pkg/menu/fixture"
)

// fixtureCommand creates the fixture command for synthetic menus.
func (c *CLI) fixtureCommand() *cobra.Command {
	var (
		output string
		total  int
	)
	opts := fixture.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Generate a synthetic menu payload",
		Long: `Generate a synthetic menu payload.

Output is the raw extraction format accepted by the layout and render
commands, and is deterministic for a given seed. Use --items for an exact
item count (useful for benchmarks), or the section/item flags for a shaped
menu.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc *menu.MenuDocument
			if total > 0 {
				doc = fixture.GenerateN(opts.Seed, total)
			} else {
				doc = fixture.Generate(opts)
			}
			return writeFixture(doc, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	cmd.Flags().IntVar(&opts.Sections, "sections", opts.Sections, "number of sections")
	cmd.Flags().IntVar(&opts.MinItemsPer, "min-items", opts.MinItemsPer, "minimum items per section")
	cmd.Flags().IntVar(&opts.MaxItemsPer, "max-items", opts.MaxItemsPer, "maximum items per section")
	cmd.Flags().Float64Var(&opts.ImageRatio, "image-ratio", opts.ImageRatio, "fraction of items with images")
	cmd.Flags().StringVar(&opts.Currency, "currency", opts.Currency, "ISO 4217 currency code")
	cmd.Flags().IntVar(&total, "items", 0, "exact total item count, overrides the shape flags")

	return cmd
}

// writeFixture serializes the document back into the raw extraction format.
func writeFixture(doc *menu.MenuDocument, output string) error {
	raw := menu.RawMenu{
		Title:    doc.Title,
		Currency: doc.Currency.Code,
	}
	for _, sec := range doc.Sections {
		cat := menu.RawCategory{ID: sec.ID, Name: sec.Name}
		for _, it := range sec.Items {
			price := it.Price
			cat.Items = append(cat.Items, menu.RawItem{
				ID:          it.ID,
				Name:        it.Name,
				Description: it.Description,
				Price:       &price,
				Image:       it.ImageRef,
				Featured:    it.Featured,
			})
		}
		raw.Categories = append(raw.Categories, cat)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := menuio.WriteArtifact(output, data); err != nil {
		return err
	}
	printSuccess("Generated %s", output)
	printDetail("%d sections, %d items", len(doc.Sections), doc.TotalItems())
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render %s", appName, output))
	return nil
}
