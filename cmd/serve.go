package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/server"
	"github.com/ziadkadry99/polgraph/internal/theme"
	"github.com/ziadkadry99/polgraph/internal/viewer"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive graph in the browser",
	Long: `Starts an HTTP server with the interactive graph view, a JSON API over the
dataset and a WebSocket session per browser tab that drives the pan, zoom,
drag and highlight state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		d, err := loadDataset(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		if cfg.InitialFilter != filter.All {
			if _, ok := d.Group(cfg.InitialFilter); !ok {
				return fmt.Errorf("initial_filter %q is not a group of %q", cfg.InitialFilter, d.Title)
			}
		}
		warnDataset(d, logger)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
			Version:  Version,
		}, logger)

		viewer.New(d, viewer.Options{
			Theme:         theme.Parse(cfg.Theme),
			InitialFilter: cfg.InitialFilter,
			Logger:        logger,
		}).RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", "error", err)
			}
		}()

		logger.Info("polgraph starting",
			"version", Version,
			"dataset", d.Title,
			"nodes", len(d.Nodes),
			"edges", len(d.Edges),
			"markets", len(d.Markets),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

// warnDataset logs references the renderer will silently drop.
func warnDataset(d *dataset.Dataset, logger *slog.Logger) {
	for _, e := range d.DanglingEdges() {
		logger.Warn("edge references unknown node", "source", e.Source, "target", e.Target)
	}
	for _, link := range d.UnknownMarketLinks() {
		logger.Warn("market linked to unknown node", "link", link)
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "HTTP port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
