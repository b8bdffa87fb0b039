// Package io provides file import and export for menu payloads and
// rendered artifacts.
//
// # Import
//
// Menu content arrives as the raw extraction format: a JSON object with a
// title, an optional currency, and a "categories" array of sections and
// items. [ImportMenu] reads and normalizes a payload in one step:
//
//	doc, err := io.ImportMenu("menu.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Normalization is strict: structurally broken content (empty sections,
// blank names, invalid prices) is rejected with field-level errors rather
// than silently repaired. Use [ReadMenu] to read from any io.Reader.
//
// # Export
//
// [ExportArtifacts] writes a pipeline's rendered outputs next to each other
// with one file per format:
//
//	err := io.ExportArtifacts(result.Artifacts, "out", "menu")
//
// writes out/menu.svg, out/menu.json, and so on for every rendered format.
package io
