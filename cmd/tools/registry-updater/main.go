// cmd/tools/registry-updater/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const app = "registry-updater"

// Actual version can be specified in build command.
var version = "unknown"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          app,
		Short:        "registry-updater maintains the activity registry served by the worker manager",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("path", "configs/activity-registry.json", "path to registry file")

	root.AddCommand(
		newAddCmd(),
		newUpdateCmd(),
		newValidateCmd(),
		newSyncCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				cmd.Printf("%s version: %s\n", app, version)
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
