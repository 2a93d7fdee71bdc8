package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputPath returns the file path for an area's generated configuration.
func OutputPath(dir, slug string) string {
	return filepath.Join(dir, slug+".yaml")
}

// WriteFile writes rendered YAML to path atomically. The data lands in a
// temporary file first and is renamed into place, so a failed write never
// leaves a truncated configuration behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary output file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Clean up temp file on error
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save output file: %w", err)
	}

	return nil
}
