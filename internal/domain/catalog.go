package domain

import "time"

// CatalogModule is one row of the course catalog the reference backend
// schedules from. Position keeps the catalog's original order.
type CatalogModule struct {
	Position  int
	Course    string
	Module    string
	Topics    string
	ColabLink string
	Hours     float64
}

// ID returns the "<Course> - <Module>" identifier used for completion.
func (m CatalogModule) ID() string {
	return ModuleID(m.Course, m.Module)
}

// CatalogImport records one load of the catalog into the store.
type CatalogImport struct {
	ID          string
	Source      string
	ModuleCount int
	ImportedAt  time.Time
}
