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

// renderCommand creates the render command for generating deliverables.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [menu.json]",
		Short: "Render a menu to deliverable formats",
		Long: `Render a menu to deliverable formats.

The render command runs the full pipeline and writes one file per requested
format. SVG is the canonical visual output; PDF, PNG and JPG rasterize the
same geometry, and HTML produces a static positioned snapshot.

PDF and PNG output require librsvg (rsvg-convert) on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json, pdf, png, jpg (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVarP(&opts.Engine, "engine", "e", "", "layout engine: v1 single grid (default), v2 paginated")
	cmd.Flags().StringVarP(&opts.Context, "context", "c", "", "display context: mobile, tablet, desktop (default), print")
	cmd.Flags().StringVar(&opts.PresetID, "preset", "", "explicit preset, skips automatic selection")
	cmd.Flags().StringVar(&opts.TemplateID, "template", "", "template to check and lay out with")
	cmd.Flags().StringVar(&opts.PaletteID, "palette", "", "color palette: classic (default), ocean, terracotta, forest, noir")
	cmd.Flags().StringVar(&opts.ImageMode, "image-mode", "", "image fit: cover (default), contain, stretch")
	cmd.Flags().BoolVar(&opts.TextOnly, "text-only", false, "suppress item images")
	cmd.Flags().BoolVar(&opts.Textures, "textures", false, "draw textures on filler tiles")
	cmd.Flags().BoolVar(&opts.SkipFiller, "no-filler", false, "skip filler tiles in incomplete rows")
	cmd.Flags().BoolVar(&opts.HideTitle, "no-title", false, "omit the menu title band")

	return cmd
}

// runRender loads the menu, runs the pipeline, and writes every format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, output, input, opts.Formats)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printDetail("Preset: %s (%s)", result.Preset.ID, result.Preset.Family)
	printStats(result.Stats.SectionCount, result.Stats.ItemCount, result.Stats.TileCount, result.Cached())

	return nil
}

// writeArtifacts writes rendered outputs. A single format with an explicit
// output path goes to exactly that file; otherwise one file per format is
// derived from the base path.
func writeArtifacts(artifacts map[string][]byte, output, input string, formats []string) ([]string, error) {
	if len(formats) == 1 && output != "" {
		if err := menuio.WriteArtifact(output, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	return menuio.ExportArtifacts(artifacts, filepath.Dir(base), filepath.Base(base))
}
