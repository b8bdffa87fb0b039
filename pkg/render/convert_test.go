package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os/exec"
	"testing"

	"github.com/platewise/menupress/pkg/errors"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestToJPEG(t *testing.T) {
	data, err := ToJPEG(encodePNG(t), 85)
	if err != nil {
		t.Fatalf("ToJPEG: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8", b)
	}
}

func TestToJPEGClampsQuality(t *testing.T) {
	if _, err := ToJPEG(encodePNG(t), 0); err != nil {
		t.Errorf("quality 0 should fall back to default: %v", err)
	}
	if _, err := ToJPEG(encodePNG(t), 500); err != nil {
		t.Errorf("out-of-range quality should fall back to default: %v", err)
	}
}

func TestToJPEGRejectsGarbage(t *testing.T) {
	_, err := ToJPEG([]byte("not a png"), 90)
	if err == nil {
		t.Fatal("expected error for invalid PNG input")
	}
	if errors.GetCode(err) != errors.ErrCodeGenerationFailed {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeGenerationFailed)
	}
}

func TestToPNG(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`)
	data, err := ToPNG(svg, 2.0)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 {
		t.Errorf("width = %d, want 20 at 2x scale", b.Dx())
	}
}

func TestToPDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"/>`)
	data, err := ToPDF(svg)
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output missing PDF header")
	}
}
