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
	"github.com/spf13/cobra"

	"github.com/stepedge/concierge"
	"github.com/stepedge/concierge/pkg/adapters/httpapi"
	"github.com/stepedge/concierge/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the recommendation service as a JSON API over HTTP, with sessions, catalog browsing and search endpoints.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		logger := newLogger(cfg)

		registry := prometheus.NewRegistry()
		metrics := observability.New(registry)

		advisor, cleanup, err := buildAdvisor(cmd.Context(), cfg, logger, concierge.WithMetrics(metrics))
		if err != nil {
			fmt.Printf("Error initializing concierge: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		handler := httpapi.NewHandler(advisor,
			httpapi.WithLogger(logger),
			httpapi.WithMetricsRegistry(registry),
		)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Concierge Server on %s\n", srv.Addr)
			fmt.Printf("Serving catalog from: %s\n", cfg.CatalogPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Concierge Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
}
