package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	menuio "github.com/platewise/menupress/pkg/io"
	"github.com/platewise/menupress/pkg/layout/compat"
	"github.com/platewise/menupress/pkg/menu"
)

// checkCommand creates the check command for template compatibility.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		templateID string
		textOnly   bool
		paletteID  string
		noFiller   bool
		ctxName    string
	)

	cmd := &cobra.Command{
		Use:   "check [menu.json]",
		Short: "Check a template against a menu's content profile",
		Long: `Check a template against a menu's content profile.

The check classifies the pairing as OK, WARNING (usable with degraded
presentation), or INCOMPATIBLE. Without --template, every built-in template
is checked. The command itself succeeds whenever the check completes; an
INCOMPATIBLE verdict is reported, not returned as an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := menuio.ImportMenu(args[0])
			if err != nil {
				return err
			}
			ch := menu.Analyze(doc)

			opts := compat.Options{
				TextOnly:       textOnly,
				PaletteID:      paletteID,
				FillersEnabled: !noFiller,
				Context:        ctxName,
			}

			ids := compat.TemplateIDs()
			if templateID != "" {
				ids = []string{templateID}
			}

			printKeyValue("Menu", doc.Title)
			printKeyValue("Items", itemSummary(ch))
			printNewline()

			for _, id := range ids {
				tpl, err := compat.TemplateByID(id)
				if err != nil {
					return err
				}
				printResult(tpl, compat.Check(ch, tpl, opts))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateID, "template", "t", "", "template to check (default: all)")
	cmd.Flags().BoolVar(&textOnly, "text-only", false, "check with images suppressed")
	cmd.Flags().StringVar(&paletteID, "palette", "", "check with a palette selected")
	cmd.Flags().BoolVar(&noFiller, "no-filler", false, "check with filler insertion disabled")
	cmd.Flags().StringVarP(&ctxName, "context", "c", "", "display context the template will serve")

	return cmd
}

func itemSummary(ch menu.Characteristics) string {
	return fmt.Sprintf("%d items in %d sections (%.0f%% with images)",
		ch.TotalItems, ch.SectionCount, ch.ImageRatio*100)
}

// printResult prints one template verdict with any warnings indented.
func printResult(tpl compat.Template, res compat.Result) {
	switch res.Status {
	case compat.StatusOK:
		printSuccess("%s: %s", tpl.ID, res.Message)
	case compat.StatusWarning:
		printWarning("%s: %s", tpl.ID, res.Message)
		for _, w := range res.Warnings {
			printDetail("%s", w)
		}
	default:
		printError("%s: %s", tpl.ID, res.Message)
	}
}
