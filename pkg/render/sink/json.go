package sink

import (
	"encoding/json"

	"github.com/platewise/menupress/pkg/errors"
	"github.com/platewise/menupress/pkg/layout/grid"
)

// RenderGridJSON serializes a V1 layout with stable key order and
// indentation, suitable for diffing and for downstream consumers.
func RenderGridJSON(g *grid.GridLayout) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerationFailed, err, "json render failed")
	}
	return append(data, '\n'), nil
}

// RenderPagesJSON serializes a V2 paginated layout.
func RenderPagesJSON(ld *grid.LayoutDocument) ([]byte, error) {
	data, err := json.MarshalIndent(ld, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerationFailed, err, "json render failed")
	}
	return append(data, '\n'), nil
}
