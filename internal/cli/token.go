package cli

import (
	"datauri/internal/auth"
	"datauri/internal/config"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var expiresIn time.Duration
	var asJSON bool

	tokenCmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a bearer token for the upload API",
		Long:  `Signs a token for subject with JWT_SECRET. Uploads made with the token are owned by subject.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ParseConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if expiresIn <= 0 {
				expiresIn = time.Duration(cfg.JWTExpirationMinutes) * time.Minute
			}

			manager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiresIn)
			if err != nil {
				return err
			}
			token, expiresAt, err := manager.GenerateToken(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"token":      token,
					"expires_at": expiresAt,
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	tokenCmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "token lifetime (defaults to JWT_EXPIRATION_MINUTES)")
	tokenCmd.Flags().BoolVar(&asJSON, "json", false, "print token and expiry as JSON")
	return tokenCmd
}
