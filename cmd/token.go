package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/beamcheck/internal/api"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the HTTP API",
	Long: `Sign an HS256 bearer token with server.auth.jwt_key.

Examples:
  BEAMCHECK_SERVER_AUTH_JWT_KEY=secret beamcheck token --subject frontend --ttl 720h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key := conf.Server.Auth.JWTKey
		if key == "" {
			return fmt.Errorf("server.auth.jwt_key is not set")
		}
		token, err := api.IssueToken([]byte(key), tokenSubject, tokenTTL)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "beamcheck-client", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 30*24*time.Hour, "Token lifetime")
}
