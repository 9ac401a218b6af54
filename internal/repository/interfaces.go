package repository

import (
	"context"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// ModuleRepo stores the course catalog.
type ModuleRepo interface {
	// ReplaceAll swaps the whole catalog atomically and records the import.
	ReplaceAll(ctx context.Context, source string, modules []domain.CatalogModule) (*domain.CatalogImport, error)
	// List returns the catalog in its original order.
	List(ctx context.Context) ([]domain.CatalogModule, error)
	Count(ctx context.Context) (int, error)
	// LastImport returns nil when the catalog was never loaded.
	LastImport(ctx context.Context) (*domain.CatalogImport, error)
}
