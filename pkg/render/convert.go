// Package render turns computed layout geometry into deliverable artifacts.
// The SVG sink is the canonical visual form; PDF and PNG are produced by
// rasterizing that same SVG, and JPG by re-encoding the PNG, so every
// format shares identical tile coordinates by construction.
package render

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"os/exec"

	"github.com/platewise/menupress/pkg/errors"
)

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale
// factor. Scale of 2.0 produces a 2x resolution image.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// ToJPEG re-encodes PNG bytes as JPEG at the given quality (1-100).
func ToJPEG(pngData []byte, quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerationFailed, err, "decode png for jpeg export")
	}
	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerationFailed, err, "encode jpeg")
	}
	return out.Bytes(), nil
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerationFailed, err,
			"rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
