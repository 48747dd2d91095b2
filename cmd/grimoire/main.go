package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "grimoire",
		Short: "Rulebook content extraction pipeline",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "grimoire.yaml", "Path to the project config")
	root.AddCommand(extractCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(loadCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

var configPath string
