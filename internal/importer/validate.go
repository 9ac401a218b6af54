package importer

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog      = errors.New("catalog is empty")
	ErrMissingColumn     = errors.New("catalog is missing a required column")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalidCatalog    = errors.New("invalid catalog")
)

// ValidateCatalogSchema checks the catalog before conversion and returns
// every problem found.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	if schema == nil || len(schema.Modules) == 0 {
		return []error{ErrEmptyCatalog}
	}

	var errs []error
	seen := make(map[string]int, len(schema.Modules))
	for i, m := range schema.Modules {
		prefix := fmt.Sprintf("modules[%d]", i)
		if m.Course == "" {
			errs = append(errs, fmt.Errorf("%s.course is required", prefix))
		}
		if m.Module == "" {
			errs = append(errs, fmt.Errorf("%s.module is required", prefix))
		}
		if m.Hours != nil && *m.Hours < 0 {
			errs = append(errs, fmt.Errorf("%s.hours must be >= 0, got %g", prefix, *m.Hours))
		}
		if m.Course == "" || m.Module == "" {
			continue
		}
		id := m.Course + " - " + m.Module
		if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s duplicates modules[%d] (%q)", prefix, first, id))
			continue
		}
		seen[id] = i
	}
	return errs
}
