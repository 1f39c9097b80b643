package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/polgraph/internal/config"
)

var (
	cfgFile     string
	verbose     bool
	datasetFile string
)

var rootCmd = &cobra.Command{
	Use:   "polgraph",
	Short: "Interactive political relationship graph with prediction-market overlays",
	Long: `Polgraph draws a graph of political actors and the relationships between
them, overlaid with prediction-market odds. It serves a pannable, zoomable
browser view, renders static SVG frames, and exposes the graph to AI agents
via MCP.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&datasetFile, "dataset", "", "dataset YAML file (overrides config)")
}
