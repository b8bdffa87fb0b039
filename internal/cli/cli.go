// Package cli implements the menupress command-line interface.
//
// This package provides commands for computing menu layouts, rendering them
// to deliverable formats, checking template compatibility, serving the HTTP
// API, and managing the local result cache. The CLI is built using cobra
// with structured logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute deterministic tile geometry from a menu payload
//   - render: Generate SVG, HTML, JSON, PDF, PNG, or JPG output
//   - check: Classify a template against a menu's content profile
//   - preview: Interactive page-by-page layout preview
//   - fixture: Generate synthetic menus for testing and demos
//   - serve: Run the HTTP layout API
//   - cache: Manage the local result cache
//
// # Example
//
//	import "github.com/platewise/menupress/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/platewise/menupress/pkg/buildinfo"
	"github.com/platewise/menupress/pkg/cache"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "menupress"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	tuningPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Menupress turns menu content into deterministic layouts",
		Long:         `Menupress is a CLI tool for turning structured restaurant menu content into deterministic, presentation-ready layouts: responsive grids for screens and paginated documents for print.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(log.DebugLevel)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.tuningPath, "tuning", "", "TOML tuning file overriding selector thresholds and page geometry")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.fixtureCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/menupress/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadTuning resolves the effective tuning: the --tuning file when given,
// compiled-in defaults otherwise.
func (c *CLI) loadTuning() (layout.Tuning, error) {
	if c.tuningPath == "" {
		return layout.DefaultTuning(), nil
	}
	return layout.LoadTuning(c.tuningPath)
}

// applyTuning copies tuning values onto pipeline options that the caller has
// not set explicitly.
func applyTuning(opts *pipeline.Options, t layout.Tuning) {
	opts.Thresholds = t.Thresholds
	if opts.PageWidth == 0 && opts.PageHeight == 0 && opts.PageMargin == 0 {
		opts.PageWidth = t.Page.Width
		opts.PageHeight = t.Page.Height
		opts.PageMargin = t.Page.Margin
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
