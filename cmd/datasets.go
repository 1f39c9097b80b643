package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/db"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets stored in the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		list, err := dataset.NewStore(database).List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No stored datasets. Use `polgraph import <file>` to add one.")
			return nil
		}

		fmt.Printf("%-20s %-36s %6s %6s %8s  %s\n", "NAME", "TITLE", "NODES", "EDGES", "MARKETS", "IMPORTED")
		for _, s := range list {
			marker := ""
			if s.Name == cfg.DatasetName {
				marker = " *"
			}
			fmt.Printf("%-20s %-36s %6d %6d %8d  %s%s\n",
				s.Name, truncate(s.Title, 36), s.Nodes, s.Edges, s.Markets,
				s.CreatedAt.Local().Format("2006-01-02 15:04"), marker)
		}
		return nil
	},
}

var datasetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		if err := dataset.NewStore(database).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	datasetsCmd.AddCommand(datasetsDeleteCmd)
	rootCmd.AddCommand(datasetsCmd)
}
