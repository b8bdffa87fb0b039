// Package layout defines output contexts, preset families, and the heuristic
// preset selector that maps document characteristics to a layout strategy.
//
// Presets are the contract between content analysis and grid generation: a
// preset fixes the column density per output context and the tile styling,
// and the generator never makes density decisions of its own.
package layout

import (
	"github.com/platewise/menupress/pkg/errors"
)

// Output contexts. Each context has its own column density; print is a fixed
// paginated surface rather than a viewport.
const (
	ContextMobile  = "mobile"
	ContextTablet  = "tablet"
	ContextDesktop = "desktop"
	ContextPrint   = "print"
)

// ValidContexts is the set of supported output contexts.
var ValidContexts = map[string]bool{
	ContextMobile:  true,
	ContextTablet:  true,
	ContextDesktop: true,
	ContextPrint:   true,
}

// ValidateContext checks that a context is valid.
func ValidateContext(ctx string) error {
	if !ValidContexts[ctx] {
		return errors.New(errors.ErrCodeInvalidContext,
			"invalid context: %q (must be one of: mobile, tablet, desktop, print)", ctx)
	}
	return nil
}

// ViewportWidth returns the reference frame width in layout units for a
// screen context. Print does not use viewport reasoning; its width comes from
// the page spec.
func ViewportWidth(ctx string) float64 {
	switch ctx {
	case ContextMobile:
		return 390
	case ContextTablet:
		return 820
	default:
		return 1280
	}
}
