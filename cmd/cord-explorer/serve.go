// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-explorer/internal/dashboard"
	"github.com/pdiddy/cord-explorer/internal/dataset"
	"github.com/pdiddy/cord-explorer/internal/explore"
	"github.com/pdiddy/cord-explorer/pkg/types"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive explorer dashboard",
	Long: `Serve loads cleaned_cord_metadata.csv once and serves a dashboard with
three views: papers per year, the top journals of the selected year, and a
word cloud of that year's titles. The year is chosen with a slider bounded
by the years in the dataset (default 2020).

The same views are available as JSON under /api/views and as SVG under
/charts. Run "clean" first if the cleaned dataset does not exist.`,
	Args: cobra.NoArgs,
	PreRunE: bindFlags(withExplorerKeys(map[string]string{
		"explorer.addr":      "addr",
		"explorer.log_level": "log-level",
	})),
	RunE: runServe,
}

func init() {
	addExplorerFlags(serveCmd)
	serveCmd.Flags().String("addr", types.DefaultListenAddr, "HTTP listen address")
	serveCmd.Flags().String("log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(serveCmd)
}

// addExplorerFlags registers the flags shared by commands that read the
// cleaned dataset.
func addExplorerFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", types.DefaultCleanedDataset, "cleaned CSV produced by clean")
	cmd.Flags().Int("default-year", types.DefaultYear, "initially selected year")
	cmd.Flags().Int("top-journals", explore.DefaultTopJournals, "journals shown in the top journals view")
	cmd.Flags().Int("max-words", explore.DefaultMaxWords, "words kept for the word cloud")
}

// withExplorerKeys adds the keys of the shared explorer flags to keys.
func withExplorerKeys(keys map[string]string) map[string]string {
	if keys == nil {
		keys = make(map[string]string)
	}
	keys["explorer.dataset"] = "data"
	keys["explorer.default_year"] = "default-year"
	keys["explorer.top_journals"] = "top-journals"
	keys["explorer.max_words"] = "max-words"
	return keys
}

func explorerConfig() types.ExplorerConfig {
	return types.ExplorerConfig{
		Dataset:     viper.GetString("explorer.dataset"),
		Addr:        viper.GetString("explorer.addr"),
		DefaultYear: viper.GetInt("explorer.default_year"),
		TopJournals: viper.GetInt("explorer.top_journals"),
		MaxWords:    viper.GetInt("explorer.max_words"),
		LogLevel:    viper.GetString("explorer.log_level"),
	}
}

// newExplorer returns an Explorer over the process-wide dataset cache.
func newExplorer(cfg types.ExplorerConfig) *explore.Explorer {
	return explore.New(dataset.Shared(cfg.Dataset), cfg)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := explorerConfig()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := dashboard.NewServer(newExplorer(cfg), logger, registry)
	if err := srv.Warm(); err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving explorer", slog.String("addr", cfg.Addr), slog.String("dataset", cfg.Dataset))
		errCh <- httpSrv.ListenAndServe()
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
