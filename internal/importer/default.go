package importer

import (
	_ "embed"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// DefaultSource names the built-in catalog in import records.
const DefaultSource = "builtin"

// DefaultCatalog returns the catalog served when no file is configured.
func DefaultCatalog() (*CatalogSchema, error) {
	return ParseCatalogYAML(defaultCatalog)
}
