package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/studyplan/internal/logger"
	"github.com/alexanderramin/studyplan/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(app *App) *cobra.Command {
	cfg := app.ServerConfig
	if cfg.Listen == "" {
		cfg = server.DefaultConfig()
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference plan backend",
		Long: `Run the reference plan backend.

The catalog is read from --catalog (YAML or XLSX) into a sqlite store at
--db. Without --catalog the built-in catalog is served.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.Open(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer srv.Close()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				if ctx.Err() != nil {
					log.Info("signal received")
				}
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&cfg.Listen, "listen", cfg.Listen, "address to listen on")
	cmd.Flags().StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "catalog file (.yaml, .yml or .xlsx)")
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, `sqlite database path (":memory:" for none)`)
	cmd.Flags().StringVar(&cfg.LogMode, "log-mode", cfg.LogMode, "log format: dev or prod")
	cmd.Flags().StringSliceVar(&cfg.CORSOrigins, "cors-origin", cfg.CORSOrigins, "allowed CORS origin (repeatable)")
	return cmd
}
