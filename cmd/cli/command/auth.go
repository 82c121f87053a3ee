package command

import (
	"errors"
	"fmt"
	"time"

	"moviehub/cmd/cli/authentication"
	"moviehub/cmd/cli/command/client"
	"moviehub/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

// authCmd groups the staff login commands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Log in to the moviehub API as a staff user, refresh the session or log out.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as a staff user",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		resp, err := client.NewHTTPClient(apiURL).Login(&req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		err = authentication.StoreTokens(&authentication.StoredCredentials{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			Username:     resp.Username,
			Role:         resp.Role,
			ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
		})
		if err != nil {
			return fmt.Errorf("could not store tokens: %w", err)
		}

		success("Logged in as %s (%s)", resp.Username, resp.Role)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Get a new access token with the stored refresh token",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err != nil {
			return err
		}
		resp, err := client.NewHTTPClient(apiURL).Refresh(creds.RefreshToken)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		creds.AccessToken = resp.AccessToken
		creds.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("could not store tokens: %w", err)
		}
		success("Session refreshed")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and forget the stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if errors.Is(err, authentication.ErrNotLoggedIn) {
			success("Already logged out")
			return nil
		}
		if err != nil {
			return err
		}
		// the server may already have expired the token; local logout still applies
		if err := client.NewHTTPClient(apiURL).Revoke(creds.RefreshToken); err != nil {
			printf("warning: could not revoke refresh token: %v\n", err)
		}
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("could not delete tokens: %w", err)
		}
		success("Logged out")
		return nil
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(refreshCmd)
	authCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringP("username", "u", "", "Staff username")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}
