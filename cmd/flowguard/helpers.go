package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/internal/config"
	"github.com/aretw0/flowguard/internal/logging"
	"github.com/aretw0/flowguard/pkg/adapters/file"
	"github.com/aretw0/flowguard/pkg/adapters/loam"
	"github.com/aretw0/flowguard/pkg/domain"
	"github.com/aretw0/flowguard/pkg/ports"
)

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("max-blocks") {
		cfg.Limits.MaxBlocks, _ = cmd.Flags().GetInt("max-blocks")
	}
	cfg.Limits = cfg.Limits.WithDefaults()
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}

func newValidator(cfg config.Config, logger *slog.Logger, opts ...flowguard.Option) *flowguard.Validator {
	base := []flowguard.Option{
		flowguard.WithLimits(cfg.Limits),
		flowguard.WithLogger(logger),
	}
	return flowguard.New(append(base, opts...)...)
}

// openLoader returns the loader for a directory, according to --source.
func openLoader(dir, source string) (ports.FlowLoader, error) {
	switch source {
	case "", "file":
		return file.NewLoader(dir), nil
	case "loam":
		return loam.Open(dir)
	default:
		return nil, fmt.Errorf("unknown source %q (supported: file, loam)", source)
	}
}

// collectFlows resolves each path to flows: files are read directly, directories
// through the loader selected by source. The result is sorted by flow ID.
func collectFlows(ctx context.Context, paths []string, source string) ([]*domain.Flow, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var flows []*domain.Flow
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			flow, err := file.ReadFlow(p)
			if err != nil {
				return nil, err
			}
			flows = append(flows, flow)
			continue
		}

		loader, err := openLoader(p, source)
		if err != nil {
			return nil, err
		}
		loaded, err := loadAll(ctx, loader)
		if err != nil {
			return nil, err
		}
		flows = append(flows, loaded...)
	}

	sort.SliceStable(flows, func(i, j int) bool { return flows[i].ID < flows[j].ID })
	return flows, nil
}

func loadAll(ctx context.Context, loader ports.FlowLoader) ([]*domain.Flow, error) {
	ids, err := loader.List(ctx)
	if err != nil {
		return nil, err
	}
	flows := make([]*domain.Flow, 0, len(ids))
	for _, id := range ids {
		flow, err := loader.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load flow %s: %w", id, err)
		}
		flows = append(flows, flow)
	}
	return flows, nil
}
