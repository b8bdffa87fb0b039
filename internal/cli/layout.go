package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	menuio "github.com/platewise/menupress/pkg/io"
	"github.com/platewise/menupress/pkg/pipeline"
)

// layoutCommand creates the layout command for computing tile geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [menu.json]",
		Short: "Compute tile geometry for a menu",
		Long: `Compute tile geometry for a menu.

The layout command takes a raw menu payload, normalizes it, selects a preset
from the content profile (or uses an explicit preset/template), and writes the
computed geometry as layout JSON. The geometry is deterministic: the same
payload and options always produce byte-identical output.

Use --engine v2 for a paginated print document instead of a single grid.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVarP(&opts.Engine, "engine", "e", "", "layout engine: v1 single grid (default), v2 paginated")
	cmd.Flags().StringVarP(&opts.Context, "context", "c", "", "display context: mobile, tablet, desktop (default), print")
	cmd.Flags().StringVar(&opts.PresetID, "preset", "", "explicit preset, skips automatic selection")
	cmd.Flags().StringVar(&opts.TemplateID, "template", "", "template to check and lay out with")
	cmd.Flags().BoolVar(&opts.SkipFiller, "no-filler", false, "skip filler tiles in incomplete rows")
	cmd.Flags().BoolVar(&opts.HideTitle, "no-title", false, "omit the menu title band")
	cmd.Flags().Float64Var(&opts.PageWidth, "page-width", 0, "page width in points (v2)")
	cmd.Flags().Float64Var(&opts.PageHeight, "page-height", 0, "page height in points (v2)")
	cmd.Flags().Float64Var(&opts.PageMargin, "page-margin", 0, "page margin in points (v2)")

	return cmd
}

// runLayout loads the menu, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := menuio.WriteArtifact(outputPath, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printDetail("Preset: %s (%s)", result.Preset.ID, result.Preset.Family)
	if result.Stats.PageCount > 0 {
		printDetail("Pages: %d", result.Stats.PageCount)
	}
	printStats(result.Stats.SectionCount, result.Stats.ItemCount, result.Stats.TileCount, result.Cached())
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
