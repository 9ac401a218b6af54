package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/repository"
)

// LoadFile reads a catalog from path, choosing the parser by extension
// (.yaml, .yml or .xlsx).
func LoadFile(path string) (*CatalogSchema, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadCatalogYAML(path)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseCatalogXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ImportFile loads, validates and stores the catalog at path, replacing
// whatever the repository held.
func ImportFile(ctx context.Context, repo repository.ModuleRepo, path string) (*domain.CatalogImport, error) {
	schema, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return Import(ctx, repo, filepath.Base(path), schema)
}

// Import validates schema and stores it under the given source name.
func Import(ctx context.Context, repo repository.ModuleRepo, source string, schema *CatalogSchema) (*domain.CatalogImport, error) {
	if errs := ValidateCatalogSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	imp, err := repo.ReplaceAll(ctx, source, Convert(schema))
	if err != nil {
		return nil, fmt.Errorf("storing catalog: %w", err)
	}
	return imp, nil
}
