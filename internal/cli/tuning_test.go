package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/pipeline"
)

func TestApplyTuningDefaults(t *testing.T) {
	opts := pipeline.Options{}
	applyTuning(&opts, layout.DefaultTuning())

	if opts.Thresholds.DenseMinItems != layout.DefaultThresholds().DenseMinItems {
		t.Errorf("thresholds not applied: %+v", opts.Thresholds)
	}
	spec := layout.DefaultPageSpec()
	if opts.PageWidth != spec.Width || opts.PageHeight != spec.Height || opts.PageMargin != spec.Margin {
		t.Errorf("page spec not applied: %v×%v margin %v", opts.PageWidth, opts.PageHeight, opts.PageMargin)
	}
}

func TestApplyTuningPreservesExplicitPage(t *testing.T) {
	opts := pipeline.Options{PageWidth: 400}
	applyTuning(&opts, layout.DefaultTuning())

	if opts.PageWidth != 400 {
		t.Errorf("explicit page width overwritten: %v", opts.PageWidth)
	}
	if opts.PageHeight != 0 {
		t.Errorf("partial page spec should not be filled from tuning, got height %v", opts.PageHeight)
	}
}

func TestLoadTuningDefault(t *testing.T) {
	c := New(io.Discard, LogInfo)

	tuning, err := c.loadTuning()
	if err != nil {
		t.Fatalf("loadTuning() error: %v", err)
	}
	if tuning != layout.DefaultTuning() {
		t.Errorf("loadTuning() without a path should return defaults")
	}
}

func TestLoadTuningFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.toml")
	content := "[thresholds]\ndense_min_items = 30\n\n[page]\nwidth = 612\nheight = 792\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.tuningPath = path

	tuning, err := c.loadTuning()
	if err != nil {
		t.Fatalf("loadTuning() error: %v", err)
	}
	if tuning.Thresholds.DenseMinItems != 30 {
		t.Errorf("dense_min_items = %d, want 30", tuning.Thresholds.DenseMinItems)
	}
	if tuning.Page.Width != 612 || tuning.Page.Height != 792 {
		t.Errorf("page = %v×%v, want 612×792", tuning.Page.Width, tuning.Page.Height)
	}
	// Values not in the file keep their defaults.
	if tuning.Thresholds.ImageForwardMinRatio != layout.DefaultThresholds().ImageForwardMinRatio {
		t.Errorf("unset threshold should keep default, got %v", tuning.Thresholds.ImageForwardMinRatio)
	}
	if tuning.Page.Margin != layout.DefaultPageSpec().Margin {
		t.Errorf("unset margin should keep default, got %v", tuning.Page.Margin)
	}
}

func TestLoadTuningInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.toml")
	content := "[thresholds]\nimage_forward_min_ratio = 2.5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.tuningPath = path

	if _, err := c.loadTuning(); err == nil {
		t.Error("loadTuning() should reject out-of-range thresholds")
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.tuningPath = filepath.Join(t.TempDir(), "absent.toml")

	if _, err := c.loadTuning(); err == nil {
		t.Error("loadTuning() should fail for a missing file")
	}
}
