package io

import (
	"fmt"
	"io"
	"os"

	"github.com/platewise/menupress/pkg/menu"
)

// ReadMenu decodes and normalizes a raw menu payload from r.
//
// The input must be a JSON object in the extraction format:
//
//	{
//	  "title": "Corner Bistro",
//	  "currency": "USD",
//	  "categories": [
//	    {"name": "Mains", "items": [{"name": "Fish & Chips", "price": 14.5}]}
//	  ]
//	}
//
// Validation errors carry the offending field path, for example
// "categories[0].items[2].price". ReadMenu does not close r.
func ReadMenu(r io.Reader) (*menu.MenuDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	raw, err := menu.ParseRawMenu(data)
	if err != nil {
		return nil, err
	}
	return menu.Normalize(raw, "")
}

// ImportMenu reads a JSON payload file at path and returns the normalized
// document. The error wraps the underlying cause with the file path for
// context.
func ImportMenu(path string) (*menu.MenuDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadMenu(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
