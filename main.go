package main

import (
	"github.com/casevault/ocrbatch/cmd"
)

// Version information - set during build time via ldflags
var (
	Version   = "dev"
	GitCommit = "none"
)

func main() {
	cmd.SetVersionInfo(Version, GitCommit)
	cmd.Execute()
}
