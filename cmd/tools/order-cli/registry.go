package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"voice-order-workers/pkg/registry"
)

func newRegistryCmd() *cobra.Command {
	var path string

	load := func() (*registry.ActivityRegistry, error) {
		if path == "" {
			return registry.Default(), nil
		}
		return registry.LoadRegistry(path)
	}

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Registry file (defaults to the embedded registry)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TASK TYPE\tID\tCATEGORY\tERRORS")
			for _, a := range reg.Activities {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.TaskType, a.ID, a.Category, strings.Join(a.ErrorCodes, ","))
			}
			return tw.Flush()
		},
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the registry for missing fields and duplicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities (version %s).\n", len(reg.Activities), reg.Version)
			return nil
		},
	}

	cmd.AddCommand(list, validate)
	return cmd
}
