package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ziadkadry99/polgraph/internal/config"
	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/db"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `polgraph init` to create a config file", err)
	}
	if datasetFile != "" {
		cfg.Dataset = datasetFile
		cfg.DatasetName = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Output goes to stderr so stdout stays
// free for SVG output and the MCP protocol.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadDataset resolves the dataset to show: a named dataset from the
// database, then a YAML file, then the bundled one.
func loadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dataset.Dataset, error) {
	switch {
	case cfg.DatasetName != "":
		database, err := db.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		d, err := dataset.NewStore(database).Load(ctx, cfg.DatasetName)
		if err != nil {
			return nil, fmt.Errorf("loading dataset %q: %w", cfg.DatasetName, err)
		}
		logger.Debug("loaded stored dataset", "name", cfg.DatasetName, "db", cfg.Database)
		return d, nil
	case cfg.Dataset != "":
		d, err := dataset.LoadFile(cfg.Dataset)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded dataset file", "path", cfg.Dataset)
		return d, nil
	default:
		logger.Debug("using bundled dataset")
		return dataset.Default(), nil
	}
}
