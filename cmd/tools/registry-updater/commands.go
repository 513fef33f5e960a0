// cmd/tools/registry-updater/commands.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobbly-workers/pkg/registry"
)

func registryPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("path")
	return path
}

func newAddCmd() *cobra.Command {
	var a registry.Activity

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new activity to the registry",
		Example: `  registry-updater add --id jobs.application.withdraw --displayName "Withdraw Application" \
    --description "Withdraws a pending application" --category application --taskType withdraw-application`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := registryPath(cmd)
			reg, err := registry.LoadOrNew(path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}

			a.Inputs, a.Outputs, a.ErrorCodes = []string{}, []string{}, []string{}
			a.Workflows, a.Tags = []string{}, []string{}
			if err := reg.Add(a); err != nil {
				return err
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			cmd.Printf("Added activity: %s\n", a.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.ID, "id", "", "activity ID (e.g. jobs.application.submit)")
	f.StringVar(&a.DisplayName, "displayName", "", "display name")
	f.StringVar(&a.Description, "description", "", "description")
	f.StringVar(&a.Category, "category", "", "category (eligibility, application, assessment)")
	f.StringVar(&a.TaskType, "taskType", "", "Zeebe task type")
	f.StringVar(&a.Version, "version", "1.0.0", "version")
	f.StringVar(&a.ImplementationStatus, "status", registry.StatusPlanned, "implementation status (planned, in-progress, completed, verified)")
	f.StringVar(&a.Timeout, "timeout", "10s", "job timeout")
	f.IntVar(&a.Retries, "retries", 3, "job retries")
	for _, name := range []string{"id", "displayName", "description", "category", "taskType"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var id, field, value string

	cmd := &cobra.Command{
		Use:     "update",
		Short:   "Update an existing activity's field",
		Example: "  registry-updater update --id jobs.application.submit --field status --value verified",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := registryPath(cmd)
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			cmd.Printf("Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "activity ID to update")
	cmd.Flags().StringVar(&field, "field", "", "field to update (status, version, displayName, description, category, taskType, timeout, retries)")
	cmd.Flags().StringVar(&value, "value", "", "new value for the field")
	for _, name := range []string{"id", "field", "value"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the registry file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(registryPath(cmd))
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			cmd.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Write the worker manager's built-in activities into the registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := registryPath(cmd)
			reg, err := registry.LoadOrNew(path)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}

			added := reg.Sync(registry.Builtin())
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			cmd.Printf("Synced %d activities, %d new.\n", len(reg.Activities), len(added))
			return nil
		},
	}
}
