package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the top-level YAML structure of a catalog file.
type CatalogSchema struct {
	Modules []ModuleImport `yaml:"modules"`
}

// ModuleImport is one catalog row. Hours defaults to 1 when omitted.
type ModuleImport struct {
	Course    string   `yaml:"course"`
	Module    string   `yaml:"module"`
	Topics    string   `yaml:"topics"`
	ColabLink string   `yaml:"colab_link,omitempty"`
	Hours     *float64 `yaml:"hours,omitempty"`
}

// ParseCatalogYAML decodes a catalog from YAML bytes.
func ParseCatalogYAML(data []byte) (*CatalogSchema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyCatalog
	}
	var schema CatalogSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing catalog yaml: %w", err)
	}
	return &schema, nil
}

// LoadCatalogYAML reads and parses a YAML catalog file.
func LoadCatalogYAML(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalogYAML(data)
}
