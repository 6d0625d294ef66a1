package app

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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/pulsemetrics/adpulse/internal/config"
	"github.com/pulsemetrics/adpulse/internal/httpx"
	"github.com/pulsemetrics/adpulse/internal/store"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run history over HTTP",
	Long: `Start a read-only HTTP API over the run history database, with
health endpoints and a Prometheus scrape endpoint on /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (default: from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	port := cfg.Port
	if servePort != "" {
		port = servePort
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer db.Close()

	// The serve command logs structured JSON; it is the one mode meant
	// to run unattended behind a log collector.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := httpx.NewMetrics(reg, db)

	server := httpx.NewServer(db, logger, m)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server.Router(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr), slog.String("version", appVersion))
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
