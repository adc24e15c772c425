package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pagearchiver/internal/api"
	"pagearchiver/internal/archive"
	"pagearchiver/internal/clock/system"
	"pagearchiver/internal/config"
	collyfetcher "pagearchiver/internal/fetcher/colly"
	"pagearchiver/internal/ledger"
	"pagearchiver/internal/logging"
	"pagearchiver/internal/progress"
	"pagearchiver/internal/progress/sinks"
	"pagearchiver/internal/source"
	"pagearchiver/internal/store"
)

// newFetchCmd creates the 'fetch' subcommand, which runs one sequential pass
// over the configured URL list.
func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Runs one archive pass over the URL list",
		Long: `Loads the URL list and the progress ledger, then fetches every page
whose sequence identifier is not yet recorded. Each page is written to the
output directory before its ledger entry is appended. The command runs to
completion; failed pages are retried on the next invocation.`,
		RunE: runFetchCommand,
	}
}

func runFetchCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	led, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() {
		if cerr := led.Close(); cerr != nil {
			logger.Warn("Failed to close ledger", zap.Error(cerr))
		}
	}()

	pages, err := store.New(cfg.Store.Dir, cfg.Store.PadWidth)
	if err != nil {
		return fmt.Errorf("init page store: %w", err)
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
	}, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	promSink, err := sinks.NewPrometheusSink(registry)
	if err != nil {
		return fmt.Errorf("init prometheus sink: %w", err)
	}
	emitter := progress.NewFanout(logger, sinks.NewLogSink(logger), promSink)
	defer func() {
		if cerr := emitter.Close(context.Background()); cerr != nil {
			logger.Warn("Failed to close progress sinks", zap.Error(cerr))
		}
	}()

	if cfg.Metrics.ListenAddr != "" {
		srv := api.New(cfg.Metrics.ListenAddr, registry, logger)
		go func() {
			if serr := srv.Start(); serr != nil {
				logger.Warn("Metrics listener stopped", zap.Error(serr))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if serr := srv.Shutdown(shutdownCtx); serr != nil {
				logger.Warn("Metrics listener shutdown failed", zap.Error(serr))
			}
		}()
	}

	archiver := archive.New(
		archive.Config{Delay: cfg.Run.Delay},
		source.New(cfg.Source.Path),
		led,
		fetcher,
		pages,
		system.New(),
		emitter,
		logger,
	)

	stats, err := archiver.Run(ctx)
	if err != nil {
		if errors.Is(err, archive.ErrEmptySource) {
			return fmt.Errorf("nothing to do: %w (checked %s)", err, cfg.Source.Path)
		}
		return fmt.Errorf("archive run: %w", err)
	}

	logger.Info("Run summary",
		zap.Int("total", stats.Total),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
		zap.String("pages_dir", pages.Dir()),
		zap.String("ledger", cfg.Ledger.Path),
	)
	return nil
}
