package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/google/uuid"
)

// SQLiteModuleRepo implements ModuleRepo using a SQLite database.
type SQLiteModuleRepo struct {
	db *sql.DB
}

// NewSQLiteModuleRepo creates a new SQLiteModuleRepo.
func NewSQLiteModuleRepo(database *sql.DB) *SQLiteModuleRepo {
	return &SQLiteModuleRepo{db: database}
}

func (r *SQLiteModuleRepo) ReplaceAll(ctx context.Context, source string, modules []domain.CatalogModule) (*domain.CatalogImport, error) {
	imp := &domain.CatalogImport{
		ID:          uuid.NewString(),
		Source:      source,
		ModuleCount: len(modules),
		ImportedAt:  time.Now().UTC().Truncate(time.Second),
	}

	err := db.WithinTx(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_modules`); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
		for i, m := range modules {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO catalog_modules (position, course, module, topics, colab_link, hours)
				VALUES (?, ?, ?, ?, ?, ?)`,
				i, m.Course, m.Module, m.Topics, m.ColabLink, m.Hours,
			)
			if err != nil {
				return fmt.Errorf("inserting module %q: %w", m.ID(), err)
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_imports (id, source, module_count, imported_at) VALUES (?, ?, ?, ?)`,
			imp.ID, imp.Source, imp.ModuleCount, imp.ImportedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("recording import: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imp, nil
}

func (r *SQLiteModuleRepo) List(ctx context.Context) ([]domain.CatalogModule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT position, course, module, topics, colab_link, hours
		FROM catalog_modules ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}
	defer rows.Close()

	var out []domain.CatalogModule
	for rows.Next() {
		var m domain.CatalogModule
		if err := rows.Scan(&m.Position, &m.Course, &m.Module, &m.Topics, &m.ColabLink, &m.Hours); err != nil {
			return nil, fmt.Errorf("scanning module: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteModuleRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_modules`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting modules: %w", err)
	}
	return n, nil
}

func (r *SQLiteModuleRepo) LastImport(ctx context.Context) (*domain.CatalogImport, error) {
	var (
		imp        domain.CatalogImport
		importedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source, module_count, imported_at FROM catalog_imports
		ORDER BY imported_at DESC, rowid DESC LIMIT 1`,
	).Scan(&imp.ID, &imp.Source, &imp.ModuleCount, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading last import: %w", err)
	}
	if imp.ImportedAt, err = time.Parse(time.RFC3339, importedAt); err != nil {
		return nil, fmt.Errorf("parsing import time: %w", err)
	}
	return &imp, nil
}
