package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/platewise/menupress/pkg/errors"
)

func writeTuning(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	path := writeTuning(t, `
[thresholds]
dense_min_items = 30

[page]
width = 612.0
height = 792.0
`)
	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning() error = %v", err)
	}
	if got.Thresholds.DenseMinItems != 30 {
		t.Errorf("DenseMinItems = %d, want 30", got.Thresholds.DenseMinItems)
	}
	// untouched values keep their defaults
	if got.Thresholds.ImageForwardMinRatio != DefaultThresholds().ImageForwardMinRatio {
		t.Errorf("ImageForwardMinRatio = %v, want default", got.Thresholds.ImageForwardMinRatio)
	}
	if got.Page.Width != 612 || got.Page.Height != 792 {
		t.Errorf("Page = %+v", got.Page)
	}
	if got.Page.Margin != DefaultPageSpec().Margin {
		t.Errorf("Margin = %v, want default", got.Page.Margin)
	}
}

func TestLoadTuningInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `[thresholds`},
		{"degenerate ratio", "[thresholds]\nimage_forward_min_ratio = 2.0\n"},
		{"degenerate page", "[page]\nwidth = 10.0\nheight = 10.0\nmargin = 20.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTuning(writeTuning(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidTuning) {
				t.Errorf("want INVALID_TUNING, got %v", err)
			}
		})
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidTuning) {
		t.Errorf("want INVALID_TUNING, got %v", err)
	}
}
