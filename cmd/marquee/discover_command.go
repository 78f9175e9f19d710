package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var discoverActions = []string{"popular", "upcoming", "recommendations"}

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "discover <action>",
		Short:     "List recommendation candidates not already in the library",
		Long:      "Fetches candidates from the discovery service and drops movies the library already holds or excludes.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: discoverActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			action := args[0]
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				out := cmd.OutOrStdout()
				if !rt.cfg.Discovery.Enabled {
					fmt.Fprintln(out, "Discovery is disabled; enable it in the [discovery] config section")
					return nil
				}

				movies, err := rt.service.Discover(cmdCtx, action)
				if err != nil {
					return err
				}
				if len(movies) == 0 {
					fmt.Fprintf(out, "No new candidates for %q\n", action)
					return nil
				}

				rows := make([][]string, 0, len(movies))
				for _, mv := range movies {
					rows = append(rows, movieRow(mv))
				}
				fmt.Fprintln(out, renderTable(movieTableHeaders, rows, movieTableAligns))
				return nil
			})
		},
	}
	return cmd
}
