package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

func newChangesCommand(ctx *commandContext) *cobra.Command {
	var sinceFlag string

	cmd := &cobra.Command{
		Use:   "changes",
		Short: "List provider ids changed since a point in time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := parseSince(sinceFlag, time.Now())
			if err != nil {
				return err
			}
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				ids, err := rt.service.ListChangedIDs(cmdCtx, since)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(ids) == 0 {
					fmt.Fprintf(out, "No changes since %s\n", since.Format(time.RFC3339))
					return nil
				}

				sorted := make([]int, 0, len(ids))
				for id := range ids {
					sorted = append(sorted, id)
				}
				sort.Ints(sorted)

				fmt.Fprintf(out, "%d movies changed since %s:\n", len(sorted), since.Format(time.RFC3339))
				for _, id := range sorted {
					fmt.Fprintln(out, id)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sinceFlag, "since", "24h", "Duration (72h) or date (2006-01-02) to look back from")
	return cmd
}
