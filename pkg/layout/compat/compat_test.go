package compat

import (
	"testing"

	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/menu"
)

func TestCheck(t *testing.T) {
	withImages := menu.Characteristics{SectionCount: 2, TotalItems: 10, ImageRatio: 0.5}
	textOnly := menu.Characteristics{SectionCount: 2, TotalItems: 10}

	tests := []struct {
		name       string
		ch         menu.Characteristics
		tpl        Template
		opts       Options
		wantStatus string
	}{
		{
			name: "images on text-only template without fallback",
			ch:   withImages,
			tpl: Template{ID: "t", Family: layout.FamilyDense,
				Capabilities: Capabilities{SupportsImages: false, SupportsTextOnly: false}},
			wantStatus: StatusIncompatible,
		},
		{
			name: "images dropped via text-only fallback",
			ch:   withImages,
			tpl: Template{ID: "t", Family: layout.FamilyDense,
				Capabilities: Capabilities{SupportsTextOnly: true}},
			wantStatus: StatusWarning,
		},
		{
			name: "image-centric template with textless document and fallback",
			ch:   textOnly,
			tpl: Template{ID: "t", Family: layout.FamilyImageForward,
				Capabilities: Capabilities{SupportsImages: true, SupportsTextOnly: true}},
			wantStatus: StatusWarning,
		},
		{
			name: "image-centric template with textless document and no fallback",
			ch:   textOnly,
			tpl: Template{ID: "t", Family: layout.FamilyImageForward,
				Capabilities: Capabilities{SupportsImages: true}},
			wantStatus: StatusIncompatible,
		},
		{
			name: "forced text-only unsupported",
			ch:   textOnly,
			tpl: Template{ID: "t", Family: layout.FamilyBalanced,
				Capabilities: Capabilities{SupportsImages: true}},
			opts:       Options{TextOnly: true},
			wantStatus: StatusIncompatible,
		},
		{
			name: "palette ignored yields warning",
			ch:   textOnly,
			tpl: Template{ID: "t", Family: layout.FamilyBalanced,
				Capabilities: Capabilities{SupportsTextOnly: true}},
			opts:       Options{PaletteID: "ocean"},
			wantStatus: StatusWarning,
		},
		{
			name: "fully compatible",
			ch:   withImages,
			tpl: Template{ID: "t", Family: layout.FamilyBalanced,
				Capabilities: Capabilities{
					SupportsImages: true, SupportsTextOnly: true,
					SupportsResponsive: true, SupportsPalettes: true, AutoFiller: true}},
			opts:       Options{PaletteID: "ocean", FillersEnabled: true, Context: layout.ContextDesktop},
			wantStatus: StatusOK,
		},
		{
			name: "print-first template on desktop warns",
			ch:   textOnly,
			tpl: Template{ID: "t", Family: layout.FamilyDense,
				Capabilities: Capabilities{SupportsTextOnly: true}},
			opts:       Options{Context: layout.ContextDesktop},
			wantStatus: StatusWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.ch, tt.tpl, tt.opts)
			if got.Status != tt.wantStatus {
				t.Errorf("Check() status = %s, want %s (message: %s)",
					got.Status, tt.wantStatus, got.Message)
			}
			if got.Status == StatusWarning && len(got.Warnings) == 0 {
				t.Error("WARNING result should list warnings")
			}
			if got.Status != StatusWarning && got.Status == StatusOK && len(got.Warnings) != 0 {
				t.Error("OK result should not carry warnings")
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	incompatible := Result{Status: StatusIncompatible, Message: "nope"}
	if err := incompatible.Err(); !errors.Is(err, errors.ErrCodeTemplateIncompatible) {
		t.Errorf("Err() = %v, want TEMPLATE_INCOMPATIBLE", err)
	}
	if err := (Result{Status: StatusWarning}).Err(); err != nil {
		t.Errorf("warning should not error, got %v", err)
	}
	if err := (Result{Status: StatusOK}).Err(); err != nil {
		t.Errorf("ok should not error, got %v", err)
	}
}

func TestTemplateRegistry(t *testing.T) {
	for _, id := range TemplateIDs() {
		tpl, err := TemplateByID(id)
		if err != nil {
			t.Fatalf("TemplateByID(%s) error = %v", id, err)
		}
		if _, err := layout.PresetByID(tpl.PresetID); err != nil {
			t.Errorf("template %s binds unknown preset %s", id, tpl.PresetID)
		}
	}
	if _, err := TemplateByID("nope"); !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("unknown template should yield INVALID_TEMPLATE, got %v", err)
	}
}
