package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/internal/config"
	"github.com/aretw0/flowguard/internal/presentation/tui"
	"github.com/aretw0/flowguard/pkg/activation"
	httpAdapter "github.com/aretw0/flowguard/pkg/adapters/http"
	"github.com/aretw0/flowguard/pkg/adapters/memory"
	"github.com/aretw0/flowguard/pkg/adapters/redis"
	"github.com/aretw0/flowguard/pkg/observability"
	"github.com/aretw0/flowguard/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the validation HTTP server",
	Long: `Starts the HTTP API: stateless validation (POST /v1/validate) plus stored flows
with validated activation. Flows are kept in Redis when configured, in memory otherwise.
Use --dir to import the flows of a directory at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("redis") {
			cfg.Redis.Addr, _ = cmd.Flags().GetString("redis")
		}
		dir, _ := cmd.Flags().GetString("dir")
		source, _ := cmd.Flags().GetString("source")

		logger := newLogger(cfg)
		metrics := observability.NewMetrics()
		validator := newValidator(cfg, logger, flowguard.WithRecorder(metrics))

		flows, reports, locker, closeStore := openStores(cfg, logger)
		defer closeStore()

		opts := []activation.Option{activation.WithValidator(validator), activation.WithLogger(logger)}
		if locker != nil {
			opts = append(opts, activation.WithLocker(locker))
		}
		svc := activation.NewService(flows, reports, opts...)

		if dir != "" {
			loader, err := openLoader(dir, source)
			if err != nil {
				return err
			}
			n, err := svc.Import(cmd.Context(), loader)
			if err != nil {
				return fmt.Errorf("failed to import flows from %s: %w", dir, err)
			}
			logger.Info("flows imported", "dir", dir, "count", n)
		}

		handler, err := httpAdapter.NewHandler(&httpAdapter.Server{
			Validator: validator,
			Service:   svc,
			Metrics:   metrics.Handler(),
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		tui.PrintBanner(os.Stderr, flowguard.Version)
		return serve(srv, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides config)")
	serveCmd.Flags().String("redis", "", "Redis address for flow storage (overrides config)")
	serveCmd.Flags().String("dir", "", "Directory of flows to import at startup")
}

// openStores picks Redis when an address is configured and memory otherwise.
func openStores(cfg config.Config, logger *slog.Logger) (ports.FlowStore, ports.ReportStore, ports.Locker, func()) {
	if cfg.Redis.Addr == "" {
		store := memory.NewStore()
		logger.Info("using in-memory flow store")
		return store, store, nil, func() {}
	}

	client := backend.NewClient(&backend.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := redis.NewFromClient(client, redis.WithPrefix(cfg.Redis.Prefix), redis.WithTTL(cfg.Redis.TTL))
	locker := redis.NewLocker(client, cfg.Redis.Prefix)
	logger.Info("using redis flow store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)

	return store, store, locker, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close redis client", "err", err)
		}
	}
}

func serve(srv *http.Server, logger *slog.Logger) error {
	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting flowguard server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("flowguard server stopped gracefully")
		return nil
	}
}
