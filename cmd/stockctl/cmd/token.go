package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stockboard_backend/internal/app/config"
	jwtmw "stockboard_backend/internal/platform/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		user string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the watchlist API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, err := jwtmw.NewGenerator(cfg.JWTSecret, ttl).GenerateToken(user)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id stored in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
