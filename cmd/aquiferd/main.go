package main

import (
	"os"

	"github.com/aquifer-dex/aquifer/cmd/aquiferd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
