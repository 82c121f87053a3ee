package command

import (
	"fmt"
	"strconv"
	"strings"

	"moviehub/cmd/cli/command/client"
	"moviehub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var movieCmd = &cobra.Command{
	Use:   "movie",
	Short: "Browse and publish movies",
}

var listMoviesCmd = &cobra.Command{
	Use:   "list",
	Short: "List published movies",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := client.NewHTTPClient(apiURL).ListMovies()
		if err != nil {
			return fmt.Errorf("failed to list movies: %w", err)
		}
		printMovies(list.Movies)
		return nil
	},
}

var showMovieCmd = &cobra.Command{
	Use:   "show [slug]",
	Short: "Show a movie with its cast, genres and reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client.NewHTTPClient(apiURL).MovieDetail(args[0])
		if err != nil {
			return fmt.Errorf("failed to get movie: %w", err)
		}
		m := resp.Movie

		header("%s (%d)", m.Title, m.Year)
		if m.Tagline != "" {
			color.HiBlack("%s", m.Tagline)
		}
		if m.Category != nil {
			printf("Category: %s\n", m.Category.Name)
		}
		printf("Country: %s\n", m.Country)
		printf("Directors: %s\n", actorNames(m.Directors))
		printf("Actors: %s\n", actorNames(m.Actors))
		genres := make([]string, 0, len(m.Genres))
		for _, g := range m.Genres {
			genres = append(genres, g.Name)
		}
		printf("Genres: %s\n", strings.Join(genres, ", "))
		printf("Rating: %.1f (%d votes)\n", m.Rating.Average, m.Rating.Count)
		if m.Description != "" {
			printf("\n%s\n", m.Description)
		}
		if len(m.Reviews) > 0 {
			printf("\nReviews:\n")
			printReviews(m.Reviews, 0)
		}
		return nil
	},
}

var filterMoviesCmd = &cobra.Command{
	Use:   "filter",
	Short: "List movies released in any given year or tagged with any given genre",
	RunE: func(cmd *cobra.Command, args []string) error {
		yearArgs, _ := cmd.Flags().GetStringSlice("year")
		genres, _ := cmd.Flags().GetStringSlice("genre")

		years := make([]int, 0, len(yearArgs))
		for _, y := range yearArgs {
			n, err := strconv.Atoi(y)
			if err != nil {
				return fmt.Errorf("invalid year %q", y)
			}
			years = append(years, n)
		}

		list, err := client.NewHTTPClient(apiURL).FilterMovies(years, genres)
		if err != nil {
			return fmt.Errorf("failed to filter movies: %w", err)
		}
		printMovies(list.Movies)
		return nil
	},
}

func draftCommand(use, short, action string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [movie-id...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			c, err := GetAuthenticatedClient()
			if err != nil {
				return err
			}
			msg, err := c.RunAdminAction("movie", action, ids)
			if err != nil {
				return fmt.Errorf("failed to %s movies: %w", action, err)
			}
			success("%s", msg)
			return nil
		},
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid movie ID %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printMovies(movies []dto.MovieSummary) {
	if len(movies) == 0 {
		fmt.Println("No movies found.")
		return
	}
	header("%d movies:", len(movies))
	for _, m := range movies {
		printf("%-6d %-40s %d  /movie/%s/\n", m.ID, m.Title, m.Year, m.URL)
	}
}

func printReviews(reviews []dto.ReviewResponse, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, r := range reviews {
		color.Cyan("%s%s:", indent, r.Name)
		printf("%s  %s\n", indent, r.Text)
		printReviews(r.Replies, depth+1)
	}
}

func actorNames(list []dto.ActorSummary) string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func init() {
	movieCmd.AddCommand(listMoviesCmd)
	movieCmd.AddCommand(showMovieCmd)
	movieCmd.AddCommand(filterMoviesCmd)
	movieCmd.AddCommand(draftCommand("publish", "Publish movies (admin)", "publish"))
	movieCmd.AddCommand(draftCommand("unpublish", "Move movies back to draft (admin)", "unpublish"))

	filterMoviesCmd.Flags().StringSlice("year", nil, "Release year, repeatable")
	filterMoviesCmd.Flags().StringSlice("genre", nil, "Genre id or url slug, repeatable")
}
