package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"maturity-assessment/pkg/registry"
)

const annotationNoSession = "no-session"

func workersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "workers",
		Short:       "List the job workers the worker manager registers",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoSession: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), reg)
			}
			for _, act := range reg.Activities {
				fmt.Fprintf(cmd.OutOrStdout(), "%-26s %-8s %s\n", act.TaskType, act.Timeout, act.DisplayName)
			}
			return nil
		},
	}
	cmd.AddCommand(workersExportCmd(a), workersValidateCmd(a))
	return cmd
}

func workersExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export PATH",
		Short: "Write the activity registry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := registry.SaveRegistry(a.fs, args[0], registry.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}

func workersValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH",
		Short: "Check an activity registry file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(a.fs, args[0])
			if err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registry valid: %d activities\n", len(reg.Activities))
			return nil
		},
	}
}

// needsSession reports whether cmd or any ancestor opted out of session setup.
func needsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoSession] == "true" {
			return false
		}
	}
	return true
}
