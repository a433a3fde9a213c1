package main

import (
	"os"

	"dendrify.dev/dendrify/internal/cli"
	"dendrify.dev/dendrify/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	output.ConfigureColor(os.Stdout)

	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		output.NewSplog(os.Stderr).Error("error: %s", err)
		os.Exit(1)
	}
}
