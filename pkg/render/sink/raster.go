package sink

import "github.com/platewise/menupress/pkg/render"

// Raster defaults. PNG output scales up from the page size for crisp text;
// JPEG re-encodes the PNG since the converter has no native JPEG target.
const (
	DefaultPNGScale    = 2.0
	DefaultJPEGQuality = 90
)

// SVGToPDF converts canonical SVG output to PDF. Requires rsvg-convert.
func SVGToPDF(svg []byte) ([]byte, error) {
	return render.ToPDF(svg)
}

// SVGToPNG converts canonical SVG output to PNG. Requires rsvg-convert.
func SVGToPNG(svg []byte) ([]byte, error) {
	return render.ToPNG(svg, DefaultPNGScale)
}

// SVGToJPEG converts canonical SVG output to JPEG by way of PNG.
func SVGToJPEG(svg []byte) ([]byte, error) {
	png, err := render.ToPNG(svg, DefaultPNGScale)
	if err != nil {
		return nil, err
	}
	return render.ToJPEG(png, DefaultJPEGQuality)
}
