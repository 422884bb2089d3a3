package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawBook is one entry of a books export file.
type RawBook struct {
	OriginalTitle string `json:"original_title"    yaml:"original_title"`
	GoogleInfo    any    `json:"google_info"       yaml:"google_info"`
	CoverURL      string `json:"openlib_cover_url" yaml:"openlib_cover_url"`
}

// ReadFile loads a books export. Files ending in .yaml or .yml are decoded
// as YAML, everything else as a JSON array.
func ReadFile(path string) ([]RawBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses data according to the file extension ext.
func Decode(data []byte, ext string) ([]RawBook, error) {
	var books []RawBook
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	return books, nil
}
