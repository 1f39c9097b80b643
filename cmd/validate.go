package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/walker"
)

var (
	validateInclude []string
	validateExclude []string
)

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Check dataset files for structural errors",
	Long: `Validates dataset YAML files. Each path may be a file or a directory;
directories are searched with the include and exclude globs from the config
(** is supported). Edges and market links that point at unknown entities are
reported as warnings, since the viewer omits them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = []string{"."}
		}
		include := cfg.Include
		if len(validateInclude) > 0 {
			include = validateInclude
		}
		exclude := append(append([]string{}, cfg.Exclude...), validateExclude...)

		var files []walker.File
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				return fmt.Errorf("accessing %s: %w", arg, err)
			}
			if !info.IsDir() {
				files = append(files, walker.File{Path: arg, RelPath: arg, Size: info.Size()})
				continue
			}
			found, err := walker.Walk(walker.Config{Root: arg, Include: include, Exclude: exclude})
			if err != nil {
				return err
			}
			files = append(files, found...)
		}
		if len(files) == 0 {
			fmt.Println("No dataset files found.")
			return nil
		}

		seen := make(map[string]string)
		failed := 0
		for _, f := range files {
			if f.Hash != "" {
				if prev, ok := seen[f.Hash]; ok {
					fmt.Printf("  ~ %s: identical to %s\n", f.RelPath, prev)
				} else {
					seen[f.Hash] = f.RelPath
				}
			}

			d, err := dataset.LoadFile(f.Path)
			if err != nil {
				failed++
				fmt.Printf("  x %v\n", err)
				continue
			}
			fmt.Printf("  ok %s (%d nodes, %d edges, %d markets)\n", f.RelPath, len(d.Nodes), len(d.Edges), len(d.Markets))
			for _, e := range d.DanglingEdges() {
				fmt.Printf("     warning: edge %s -> %s references an unknown node\n", e.Source, e.Target)
			}
			for _, link := range d.UnknownMarketLinks() {
				fmt.Printf("     warning: market link %s references an unknown node\n", link)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d dataset files are invalid", failed, len(files))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringSliceVar(&validateInclude, "include", nil, "include globs (overrides config)")
	validateCmd.Flags().StringSliceVar(&validateExclude, "exclude", nil, "additional exclude globs")
	rootCmd.AddCommand(validateCmd)
}
