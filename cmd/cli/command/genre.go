package command

import (
	"fmt"

	"moviehub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var genreCmd = &cobra.Command{
	Use:   "genre",
	Short: "Genre commands",
}

var listGenresCmd = &cobra.Command{
	Use:   "list",
	Short: "List all genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := client.NewHTTPClient(apiURL).ListGenres()
		if err != nil {
			return fmt.Errorf("failed to get genres: %w", err)
		}
		if len(genres) == 0 {
			fmt.Println("No genres found.")
			return nil
		}

		header("Available genres (%d total):", len(genres))
		for _, g := range genres {
			printf("ID: %d | Name: %s | Slug: %s\n", g.ID, g.Name, g.URL)
		}
		return nil
	},
}

func init() {
	genreCmd.AddCommand(listGenresCmd)
}
