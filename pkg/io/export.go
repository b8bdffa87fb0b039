package io

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// WriteArtifact writes one rendered artifact to path, creating parent
// directories as needed.
func WriteArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ExportArtifacts writes every rendered format as <dir>/<stem>.<format> and
// returns the written paths in stable order.
func ExportArtifacts(artifacts map[string][]byte, dir, stem string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, stem+"."+format)
		if err := WriteArtifact(path, artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
