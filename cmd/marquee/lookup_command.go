package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/movie"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var showCredits bool

	cmd := &cobra.Command{
		Use:   "lookup <tmdb-id|tt-imdb-id>",
		Short: "Fetch the full record for a single movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withRuntime(cmd, func(cmdCtx context.Context, rt *runtime) error {
				out := cmd.OutOrStdout()

				if strings.HasPrefix(strings.ToLower(id), "tt") {
					mv, err := rt.service.ResolveByIMDBID(cmdCtx, strings.ToLower(id))
					if err != nil {
						return err
					}
					if mv == nil {
						fmt.Fprintf(out, "No movie found for %s\n", id)
						return nil
					}
					printMovie(out, mv, nil)
					return nil
				}

				tmdbID, err := strconv.Atoi(id)
				if err != nil || tmdbID <= 0 {
					return fmt.Errorf("%q is not a TMDB id or a tt-prefixed IMDb id", id)
				}

				mv, credits, err := rt.service.ResolveByID(cmdCtx, tmdbID)
				if err != nil {
					return err
				}
				if mv == nil {
					fmt.Fprintf(out, "Movie %d has no record upstream\n", tmdbID)
					return nil
				}
				if !showCredits {
					credits = nil
				}
				printMovie(out, mv, credits)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showCredits, "credits", false, "Include the cast and crew list")
	return cmd
}

func printMovie(out io.Writer, mv *movie.Movie, credits []movie.Credit) {
	pairs := [][2]string{
		{"Title", mv.Title},
		{"TMDB ID", strconv.Itoa(mv.TmdbID)},
		{"IMDb ID", mv.ImdbID},
		{"Slug", mv.Slug},
		{"Year", formatYear(mv.Year)},
		{"Status", string(mv.Status)},
		{"In cinemas", formatDate(mv.InCinemas)},
		{"Physical release", formatDate(mv.PhysicalRelease)},
		{"Physical note", mv.PhysicalReleaseNote},
		{"Runtime", formatRuntime(mv.Runtime)},
		{"Studio", mv.Studio},
		{"Genres", strings.Join(mv.Genres, ", ")},
		{"Rating", formatRating(mv.Ratings)},
		{"Website", mv.Website},
		{"Trailer", formatTrailer(mv.TrailerID)},
		{"Pre-release entry", yesNo(mv.HasPreReleaseEntry)},
	}
	if mv.Collection != nil {
		pairs = append(pairs, [2]string{"Collection", mv.Collection.Name})
	}
	renderKeyValues(out, pairs)

	if len(mv.AlternativeTitles) > 0 {
		titles := make([]string, 0, len(mv.AlternativeTitles))
		for _, alt := range mv.AlternativeTitles {
			titles = append(titles, fmt.Sprintf("%s (%s)", alt.Title, alt.Language))
		}
		fmt.Fprintf(out, "\nAlternative titles: %s\n", strings.Join(titles, "; "))
	}

	if mv.Overview != "" {
		fmt.Fprintf(out, "\n%s\n", mv.Overview)
	}

	if len(credits) > 0 {
		rows := make([][]string, 0, len(credits))
		for _, credit := range credits {
			role := credit.Character
			if credit.Type == movie.CreditCrew {
				role = credit.Job
			}
			rows = append(rows, []string{string(credit.Type), credit.Name, truncate(role, 40)})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Type", "Name", "Role"}, rows, nil))
	}
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min", minutes)
}

func formatRating(ratings movie.Ratings) string {
	if ratings.Votes == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f (%d votes)", ratings.Value, ratings.Votes)
}

func formatTrailer(key string) string {
	if key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + key
}
