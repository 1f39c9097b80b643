package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of polgraph",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(Version)
			return
		}
		fmt.Printf("polgraph %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if rev := vcsRevision(); rev != "" {
			fmt.Printf("  commit %s\n", rev)
		}
	},
}

// vcsRevision returns the commit the binary was built from, if recorded.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
