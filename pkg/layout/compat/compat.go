// Package compat validates an explicitly chosen template against a menu's
// content profile. The check is independent of preset selection and runs
// before it: when the caller has fixed a template, an INCOMPATIBLE result
// stops the pipeline before any geometry is computed.
package compat

import (
	"fmt"

	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout"
	"github.com/platewise/menupress/pkg/menu"
)

// Compatibility statuses.
const (
	StatusOK           = "OK"
	StatusWarning      = "WARNING"
	StatusIncompatible = "INCOMPATIBLE"
)

// Capabilities is the fixed set of independent template capability flags.
type Capabilities struct {
	SupportsImages     bool `json:"supports_images" bson:"supports_images"`
	SupportsTextOnly   bool `json:"supports_text_only" bson:"supports_text_only"`
	SupportsResponsive bool `json:"supports_responsive" bson:"supports_responsive"`
	SupportsLogo       bool `json:"supports_logo" bson:"supports_logo"`
	SupportsPalettes   bool `json:"supports_palettes" bson:"supports_palettes"`
	AutoFiller         bool `json:"auto_filler" bson:"auto_filler"`
}

// Template is a caller-chosen layout template: a preset binding plus the
// capability flags the compatibility check evaluates.
type Template struct {
	ID           string       `json:"id" bson:"id"`
	Name         string       `json:"name" bson:"name"`
	PresetID     string       `json:"preset_id" bson:"preset_id"`
	Family       string       `json:"family" bson:"family"`
	Capabilities Capabilities `json:"capabilities" bson:"capabilities"`
}

// Result classifies a template against a document's content profile.
type Result struct {
	Status   string   `json:"status" bson:"status"`
	Message  string   `json:"message" bson:"message"`
	Warnings []string `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// Options are the caller's display options relevant to the check.
type Options struct {
	TextOnly       bool
	PaletteID      string
	FillersEnabled bool
	Context        string
}

// Check evaluates a template against document characteristics.
//
// INCOMPATIBLE: the document's image usage needs capabilities the template
// lacks and no text-only fallback exists, or the caller forces an option the
// template cannot represent at all. WARNING: a fallback exists but degrades
// presentation. OK: everything else.
func Check(ch menu.Characteristics, tpl Template, opts Options) Result {
	var warnings []string

	if ch.ImageRatio > 0 && !tpl.Capabilities.SupportsImages {
		if !tpl.Capabilities.SupportsTextOnly {
			return Result{
				Status: StatusIncompatible,
				Message: fmt.Sprintf(
					"template %q cannot display images and has no text-only fallback", tpl.ID),
			}
		}
		warnings = append(warnings,
			"document images will be dropped: template falls back to text-only mode")
	}

	if ch.ImageRatio == 0 && tpl.Family == layout.FamilyImageForward {
		if !tpl.Capabilities.SupportsTextOnly {
			return Result{
				Status: StatusIncompatible,
				Message: fmt.Sprintf(
					"template %q is image-centric but the document has no images", tpl.ID),
			}
		}
		warnings = append(warnings,
			"template prefers images but the document has none: presentation degrades to text-only")
	}

	if opts.TextOnly && !tpl.Capabilities.SupportsTextOnly {
		return Result{
			Status:  StatusIncompatible,
			Message: fmt.Sprintf("template %q does not support text-only mode", tpl.ID),
		}
	}

	if opts.PaletteID != "" && !tpl.Capabilities.SupportsPalettes {
		warnings = append(warnings, "template ignores palette selection")
	}
	if opts.FillersEnabled && !tpl.Capabilities.AutoFiller {
		warnings = append(warnings, "template does not auto-fill incomplete rows")
	}
	if opts.Context != "" && opts.Context != layout.ContextPrint && !tpl.Capabilities.SupportsResponsive {
		warnings = append(warnings,
			fmt.Sprintf("template is print-first and may degrade on %s", opts.Context))
	}

	if len(warnings) > 0 {
		return Result{
			Status:   StatusWarning,
			Message:  "template is usable with degraded presentation",
			Warnings: warnings,
		}
	}
	return Result{Status: StatusOK, Message: "template is fully compatible"}
}

// Err converts an INCOMPATIBLE result into a structured error; other
// statuses return nil.
func (r Result) Err() error {
	if r.Status != StatusIncompatible {
		return nil
	}
	return errors.New(errors.ErrCodeTemplateIncompatible, "%s", r.Message)
}

// Built-in templates. IDs are stable API surface.
var templates = map[string]Template{
	"classic-card": {
		ID:       "classic-card",
		Name:     "Classic Card",
		PresetID: "balanced-standard",
		Family:   layout.FamilyBalanced,
		Capabilities: Capabilities{
			SupportsImages:     true,
			SupportsTextOnly:   true,
			SupportsResponsive: true,
			SupportsLogo:       true,
			SupportsPalettes:   true,
			AutoFiller:         true,
		},
	},
	"gallery": {
		ID:       "gallery",
		Name:     "Gallery",
		PresetID: "image-forward-overlay",
		Family:   layout.FamilyImageForward,
		Capabilities: Capabilities{
			SupportsImages:     true,
			SupportsResponsive: true,
			SupportsPalettes:   true,
			AutoFiller:         true,
		},
	},
	"bistro-board": {
		ID:       "bistro-board",
		Name:     "Bistro Board",
		PresetID: "dense-compact",
		Family:   layout.FamilyDense,
		Capabilities: Capabilities{
			SupportsTextOnly: true,
			SupportsLogo:     true,
			SupportsPalettes: true,
		},
	},
	"showcase": {
		ID:       "showcase",
		Name:     "Showcase",
		PresetID: "feature-band-showcase",
		Family:   layout.FamilyFeatureBand,
		Capabilities: Capabilities{
			SupportsImages:     true,
			SupportsTextOnly:   true,
			SupportsResponsive: true,
			SupportsLogo:       true,
			SupportsPalettes:   true,
			AutoFiller:         true,
		},
	},
}

// TemplateByID looks up a built-in template.
func TemplateByID(id string) (Template, error) {
	t, ok := templates[id]
	if !ok {
		return Template{}, errors.New(errors.ErrCodeInvalidTemplate, "unknown template: %q", id)
	}
	return t, nil
}

// TemplateIDs returns all built-in template IDs in stable order.
func TemplateIDs() []string {
	return []string{"bistro-board", "classic-card", "gallery", "showcase"}
}
