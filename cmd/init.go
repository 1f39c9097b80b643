package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/polgraph/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize polgraph configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the theme, port, dataset and database, and writes a .polgraph.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s. Run `polgraph serve` to open the graph on port %d.\n", cfgFile, cfg.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
