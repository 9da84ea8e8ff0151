package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-go/popup/internal/config"
	"github.com/vango-go/popup/internal/playground"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the popup playground server",
		Long: `Start the interactive playground server.

The playground serves a demo page and drives one popup controller
per WebSocket connection. Configuration is read from popup.json in
the working directory when present.

Examples:
  popup serve
  popup serve --port=8080
  popup serve --host=0.0.0.0 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, metrics, verbose)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from popup.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from popup.json)")
	cmd.Flags().BoolVarP(&metrics, "metrics", "m", false, "Enable the Prometheus /metrics endpoint")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runServe(port int, host string, metrics, verbose bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if metrics {
		cfg.Metrics.Enabled = true
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	printBanner()
	fmt.Println("  playground")
	fmt.Println()
	if cfg.Path() != "" {
		info("Config:  %s", cfg.Path())
	}
	info("Address: %s", cfg.URL())
	if cfg.Metrics.Enabled {
		info("Metrics: %s%s", cfg.URL(), cfg.Metrics.Path)
	}
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
	}()

	server := playground.New(cfg, log)
	if err := server.Start(ctx); err != nil {
		return err
	}

	success("Server stopped")
	return nil
}
