// cmd/tools/worker-generator/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobbly-workers/pkg/registry"
)

func newRootCmd() *cobra.Command {
	var activityID, outputDir, registryPath string
	var force bool

	cmd := &cobra.Command{
		Use:          "worker-generator",
		Short:        "Scaffold a worker package for an activity in the registry",
		Example:      "  worker-generator --activity jobs.application.withdraw",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("error loading registry from %s: %w", registryPath, err)
			}
			activity, ok := reg.Find(activityID)
			if !ok {
				return fmt.Errorf("activity %q not found in registry %s", activityID, registryPath)
			}

			data, err := newWorkerData(activity)
			if err != nil {
				return err
			}
			written, err := Write(outputDir, data, force)
			for _, path := range written {
				cmd.Printf("Generated %s\n", path)
			}
			if err != nil {
				return err
			}

			cmd.Printf("\nNext steps:\n")
			cmd.Printf("  1. Implement Execute in handler.go and tighten the input schema\n")
			cmd.Printf("  2. Register %s in cmd/worker-manager/main.go\n", data.TaskType)
			cmd.Printf("  3. Add workers.%s to configs/config.yaml\n", data.TaskType)
			return nil
		},
	}

	cmd.Flags().StringVar(&activityID, "activity", "", "activity ID from the registry (e.g. jobs.application.withdraw)")
	cmd.Flags().StringVar(&outputDir, "output", "./internal/workers", "output root for generated workers")
	cmd.Flags().StringVar(&registryPath, "registry", "configs/activity-registry.json", "path to the activity registry JSON file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("activity")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
