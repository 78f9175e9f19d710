package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"marquee/internal/library"
	"marquee/internal/movie"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the local movie library",
	}

	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryAddCommand(ctx))
	libraryCmd.AddCommand(newLibraryRemoveCommand(ctx))
	libraryCmd.AddCommand(newLibraryRefreshCommand(ctx))
	libraryCmd.AddCommand(newExcludeCommand(ctx))

	return libraryCmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List movies in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				movies, err := rt.store.GetAllMovies(cmdCtx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(movies) == 0 {
					fmt.Fprintln(out, "Library is empty")
					return nil
				}

				headers := []string{"TMDB ID", "Title", "Year", "Status", "Monitored"}
				rows := make([][]string, 0, len(movies))
				for i := range movies {
					mv := &movies[i]
					rows = append(rows, []string{
						strconv.Itoa(mv.TmdbID),
						truncate(mv.Title, 50),
						formatYear(mv.Year),
						string(mv.Status),
						yesNo(mv.Monitored),
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft}))
				return nil
			})
		},
	}
}

func newLibraryAddCommand(ctx *commandContext) *cobra.Command {
	var path string
	var monitored bool

	cmd := &cobra.Command{
		Use:   "add <tmdb-id>",
		Short: "Resolve a movie and store it in the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, err := parseTmdbID(args[0])
			if err != nil {
				return err
			}
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				mv, _, err := rt.service.ResolveByID(cmdCtx, tmdbID)
				if err != nil {
					return err
				}
				if mv == nil {
					return fmt.Errorf("movie %d has no record upstream", tmdbID)
				}

				mv.Path = path
				mv.Monitored = monitored
				if err := rt.store.Upsert(cmdCtx, mv); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to the library\n", mv.Title, formatYear(mv.Year))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Filesystem path of the movie")
	cmd.Flags().BoolVar(&monitored, "monitored", true, "Monitor the movie for new releases")
	return cmd
}

func newLibraryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tmdb-id>",
		Short: "Remove a movie from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, err := parseTmdbID(args[0])
			if err != nil {
				return err
			}
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				if err := rt.store.Remove(cmdCtx, tmdbID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed movie %d\n", tmdbID)
				return nil
			})
		},
	}
}

func newLibraryRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh [tmdb-id]",
		Short: "Re-resolve stored movies against the provider",
		Long:  "Fetches fresh metadata for one movie, or for every stored movie when no id is given. Operational fields such as path and monitoring survive the refresh.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				var seeds []movie.Movie
				if len(args) == 1 {
					tmdbID, err := parseTmdbID(args[0])
					if err != nil {
						return err
					}
					seed, err := rt.store.FindByTmdbID(cmdCtx, tmdbID)
					if err != nil {
						return err
					}
					if seed == nil {
						return fmt.Errorf("movie %d is not in the library", tmdbID)
					}
					seeds = []movie.Movie{*seed}
				} else {
					all, err := rt.store.GetAllMovies(cmdCtx)
					if err != nil {
						return err
					}
					seeds = all
				}

				out := cmd.OutOrStdout()
				refreshed := 0
				for i := range seeds {
					seed := &seeds[i]
					resolved, err := rt.service.ResolveMovie(cmdCtx, seed)
					if err != nil {
						return err
					}
					if resolved == nil {
						fmt.Fprintf(out, "Skipped %s: could not be resolved\n", seed.Title)
						continue
					}
					if err := rt.store.Upsert(cmdCtx, resolved); err != nil {
						return err
					}
					refreshed++
				}
				fmt.Fprintf(out, "Refreshed %d of %d movies\n", refreshed, len(seeds))
				return nil
			})
		},
	}
}

func newExcludeCommand(ctx *commandContext) *cobra.Command {
	excludeCmd := &cobra.Command{
		Use:   "exclude",
		Short: "Manage the discovery exclusion list",
	}

	var title string
	var year int
	addCmd := &cobra.Command{
		Use:   "add <tmdb-id>",
		Short: "Exclude a movie from discovery results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, err := parseTmdbID(args[0])
			if err != nil {
				return err
			}
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				exclusion := library.Exclusion{TmdbID: tmdbID, Title: title, Year: year}
				if err := rt.store.AddExclusion(cmdCtx, exclusion); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Excluded movie %d\n", tmdbID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "Title to record with the exclusion")
	addCmd.Flags().IntVar(&year, "year", 0, "Year to record with the exclusion")

	removeCmd := &cobra.Command{
		Use:   "remove <tmdb-id>",
		Short: "Remove a movie from the exclusion list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, err := parseTmdbID(args[0])
			if err != nil {
				return err
			}
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				if err := rt.store.RemoveExclusion(cmdCtx, tmdbID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed exclusion for movie %d\n", tmdbID)
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List excluded movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				exclusions, err := rt.store.GetAllExclusions(cmdCtx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(exclusions) == 0 {
					fmt.Fprintln(out, "No exclusions")
					return nil
				}

				rows := make([][]string, 0, len(exclusions))
				for _, exclusion := range exclusions {
					rows = append(rows, []string{
						strconv.Itoa(exclusion.TmdbID),
						exclusion.Title,
						formatYear(exclusion.Year),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"TMDB ID", "Title", "Year"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
				return nil
			})
		},
	}

	excludeCmd.AddCommand(addCmd)
	excludeCmd.AddCommand(removeCmd)
	excludeCmd.AddCommand(listCmd)
	return excludeCmd
}

func parseTmdbID(value string) (int, error) {
	tmdbID, err := strconv.Atoi(value)
	if err != nil || tmdbID <= 0 {
		return 0, fmt.Errorf("%q is not a valid TMDB id", value)
	}
	return tmdbID, nil
}
