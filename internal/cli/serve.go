package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrops-br/storefront/internal/infrastructure/config"
	"github.com/mrops-br/storefront/internal/infrastructure/http"
	"github.com/mrops-br/storefront/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront/internal/infrastructure/http/session"
	"github.com/mrops-br/storefront/internal/infrastructure/http/view"
	"github.com/mrops-br/storefront/internal/infrastructure/telemetry"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadConfig()

	telem, err := telemetry.NewTelemetry(cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			telem.Logger.Error("Error shutting down telemetry", slog.String("error", err.Error()))
		}
	}()

	logger := telem.Logger
	logger.Info("Starting storefront",
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("storage_path", cfg.Storage.Path),
	)

	a, err := openApp(cfg, telem)
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := session.NewManager(cfg.Admin.SessionSecret, logger)
	if err != nil {
		return err
	}
	views, err := view.NewRenderer()
	if err != nil {
		return err
	}
	pages := handler.NewPages(views, sessions, logger)

	server := http.NewServer(&cfg.Server, http.Handlers{
		Storefront: handler.NewStorefrontHandler(a.catalog, pages),
		Admin:      handler.NewAdminHandler(a.catalog, a.gate, sessions, pages),
		API:        handler.NewProductHandler(a.catalog, logger),
	}, logger, telem)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
