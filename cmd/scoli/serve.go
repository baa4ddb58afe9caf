package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/scoli/pkg/api"
	"github.com/hazyhaar/scoli/pkg/importer"
)

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return runServe(cmd.Context(), rootOpts, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func runServe(ctx context.Context, rootOpts *rootOptions, cfg config) error {
	logger := rootOpts.logger

	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.CheckInterval > 0 && cfg.SourcesDB != "" {
		sdb, err := importer.OpenSourceDB(cfg.SourcesDB)
		if err != nil {
			return err
		}
		defer sdb.Close()
		if err := sdb.Seed(importer.All()); err != nil {
			return err
		}
		go importer.NewChecker(sdb, logger, cfg.CheckInterval).Start(ctx)
		logger.Info("source checker started", "interval", cfg.CheckInterval)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("scoli listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
