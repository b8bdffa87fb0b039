package pipeline

import (
	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/render/sink"
)

// sinkOptions translates pipeline render options into sink options.
func sinkOptions(result *Result, opts Options) []sink.Option {
	sinkOpts := []sink.Option{
		sink.WithDocument(result.Document),
		sink.WithPalette(opts.PaletteID),
		sink.WithImageMode(opts.ImageMode),
	}
	if opts.TextOnly {
		sinkOpts = append(sinkOpts, sink.WithTextOnly())
	}
	if opts.Textures {
		sinkOpts = append(sinkOpts, sink.WithTextures())
	}
	return sinkOpts
}

// renderFormats produces every requested format from the computed geometry.
// SVG is rendered at most once per run: PDF, PNG and JPG rasterize the same
// bytes, so all visual formats agree on tile coordinates.
func renderFormats(result *Result, opts Options) (map[string][]byte, *sink.HTMLResult, error) {
	sinkOpts := sinkOptions(result, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svgData []byte
	svg := func() []byte {
		if svgData == nil {
			if result.Pages != nil {
				svgData = sink.RenderPagesSVG(result.Pages, sinkOpts...)
			} else {
				svgData = sink.RenderGridSVG(result.Grid, sinkOpts...)
			}
		}
		return svgData
	}

	var htmlRes *sink.HTMLResult

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var data []byte
			var err error
			if result.Pages != nil {
				data, err = sink.RenderPagesJSON(result.Pages)
			} else {
				data, err = sink.RenderGridJSON(result.Grid)
			}
			if err != nil {
				return nil, nil, err
			}
			artifacts[format] = data

		case FormatSVG:
			artifacts[format] = svg()

		case FormatHTML:
			var res sink.HTMLResult
			var err error
			if result.Pages != nil {
				res, err = sink.RenderPagesHTML(result.Pages, sinkOpts...)
			} else {
				res, err = sink.RenderGridHTML(result.Grid, sinkOpts...)
			}
			if err != nil {
				return nil, nil, err
			}
			htmlRes = &res
			artifacts[format] = []byte(res.HTML)

		case FormatPDF:
			data, err := sink.SVGToPDF(svg())
			if err != nil {
				return nil, nil, err
			}
			artifacts[format] = data

		case FormatPNG:
			data, err := sink.SVGToPNG(svg())
			if err != nil {
				return nil, nil, err
			}
			artifacts[format] = data

		case FormatJPG:
			data, err := sink.SVGToJPEG(svg())
			if err != nil {
				return nil, nil, err
			}
			artifacts[format] = data

		default:
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}

	return artifacts, htmlRes, nil
}
