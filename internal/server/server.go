// Package server is the reference plan backend: it schedules the course
// catalog over a date range and exports plans as spreadsheets.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/importer"
	"github.com/alexanderramin/studyplan/internal/logger"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine *gin.Engine
	Import *domain.CatalogImport

	cfg Config
	log *logger.Logger
	db  *sql.DB
}

// Open prepares the catalog store, loads the catalog and builds the router.
// Call Close when done.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	repo := repository.NewSQLiteModuleRepo(database)

	imp, err := loadCatalog(ctx, repo, cfg.CatalogPath)
	if err != nil {
		database.Close()
		return nil, err
	}
	log.Info("catalog loaded", "source", imp.Source, "modules", imp.ModuleCount, "import_id", imp.ID)

	engine := NewRouter(RouterConfig{
		PlanHandler: NewPlanHandler(repo),
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
	})
	return &Server{Engine: engine, Import: imp, cfg: cfg, log: log, db: database}, nil
}

func loadCatalog(ctx context.Context, repo repository.ModuleRepo, path string) (*domain.CatalogImport, error) {
	if path != "" {
		return importer.ImportFile(ctx, repo, path)
	}
	schema, err := importer.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading built-in catalog: %w", err)
	}
	return importer.Import(ctx, repo, importer.DefaultSource, schema)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func (s *Server) Close() error {
	s.log.Sync()
	return s.db.Close()
}
