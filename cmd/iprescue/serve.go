package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	iprescue "github.com/Ernest-Sab/IPR-Tool"
	"github.com/Ernest-Sab/IPR-Tool/internal/cli"
	"github.com/Ernest-Sab/IPR-Tool/internal/config"
	httpAdapter "github.com/Ernest-Sab/IPR-Tool/pkg/adapters/http"
	"github.com/Ernest-Sab/IPR-Tool/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the deformer engine behind a JSON API, with prometheus metrics
on /metrics. The engine runs against an in-memory sandbox scene; size it with
the --mesh/--rows/--cols flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		addr, _ := cmd.Flags().GetString("addr")
		mesh, _ := cmd.Flags().GetString("mesh")
		rows, _ := cmd.Flags().GetInt("rows")
		cols, _ := cmd.Flags().GetInt("cols")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.Server.ListenAddr = addr
		}

		logger, err := cli.NewLogger(cfg, debug)
		if err != nil {
			return err
		}

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		rt, err := cli.BuildRuntime(cfg, logger,
			cli.SceneOptions{Mesh: mesh, Rows: rows, Cols: cols},
			iprescue.WithLifecycleHooks(metrics.Hooks()),
		)
		if err != nil {
			return err
		}
		defer rt.Close()

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/", httpAdapter.NewHandler(rt.Engine, logger,
			httpAdapter.WithDefaults(httpAdapter.Defaults{
				Iterations:   cfg.Defaults.Iterations,
				Strength:     cfg.Defaults.Strength,
				SmoothRadius: cfg.Defaults.SmoothRadius,
			}),
		))

		srv := &http.Server{
			Addr:    cfg.Server.ListenAddr,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting IPRescue server", "addr", srv.Addr, "mesh", mesh)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
	serveCmd.Flags().String("mesh", "body", "Name of the sandbox grid mesh")
	serveCmd.Flags().Int("rows", 10, "Rows of the sandbox grid mesh")
	serveCmd.Flags().Int("cols", 10, "Columns of the sandbox grid mesh")
}
