package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information - set during build time via ldflags
var (
	version   = "dev"
	gitCommit = "none"
)

// SetVersionInfo sets the version information from main.go
func SetVersionInfo(v, commit string) {
	version = v
	gitCommit = commit
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ocrbatch %s (%s)\n", version, gitCommit)
		fmt.Printf("go: %s, %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
