package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/db"
	"github.com/ziadkadry99/polgraph/internal/progress"
)

var importName string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a dataset file in the database",
	Long: `Validates a dataset YAML file and stores it in the configured SQLite
database under a name. Set dataset_name in the config (or POLGRAPH_DATASET_NAME)
to serve it. Importing under an existing name replaces that dataset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		d, err := dataset.LoadFile(args[0])
		if err != nil {
			return err
		}
		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		database, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		reporter := progress.NewReporter()
		if err := dataset.NewStore(database).Save(cmd.Context(), name, d, progress.Func(reporter, "Importing "+name)); err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}
		reporter.Finish()

		logger.Info("dataset imported",
			"name", name,
			"db", cfg.Database,
			"nodes", len(d.Nodes),
			"edges", len(d.Edges),
			"markets", len(d.Markets),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "name to store the dataset under (default: file name)")
	rootCmd.AddCommand(importCmd)
}
