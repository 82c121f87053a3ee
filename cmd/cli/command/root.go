package command

// root.go defines the root command of moviehubCLI and its global flags.

import (
	"fmt"
	"os"

	"moviehub/cmd/cli/authentication"
	"moviehub/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "moviehubCLI",
	Short: "moviehubCLI - movie catalog command line interface",
	Long: `moviehubCLI talks to the moviehub API. It can:
- Browse published movies and filter them by year or genre
- Log staff users in and out
- Publish or unpublish movies and read admin notices

Use "moviehubCLI command -h" to see all available commands.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("MOVIEHUB_API")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "API server URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(genreCmd)
	rootCmd.AddCommand(adminCmd)
}

// GetAuthenticatedClient returns a client carrying the stored access token.
func GetAuthenticatedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.AccessToken)
	return c, nil
}

func success(format string, args ...interface{}) {
	color.Green("✓ "+format, args...)
}

func header(format string, args ...interface{}) {
	color.New(color.Bold).Printf(format+"\n", args...)
}

func printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}
