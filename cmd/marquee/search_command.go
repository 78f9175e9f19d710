package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for movies by title, imdb:<id>, or tmdb:<id>",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				movies, err := rt.service.SearchByQuery(cmdCtx, query)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(movies) == 0 {
					fmt.Fprintf(out, "No results for %q\n", query)
					return nil
				}
				if limit > 0 && len(movies) > limit {
					movies = movies[:limit]
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

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results to show")
	return cmd
}
