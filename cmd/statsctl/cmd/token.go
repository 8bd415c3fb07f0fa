package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/g5stats/stats-api/internal/auth"
	"github.com/g5stats/stats-api/internal/config"
	"github.com/g5stats/stats-api/internal/models"
)

var (
	tokenUserID     int64
	tokenAdmin      bool
	tokenSuperAdmin bool
	tokenTTL        time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token signed with JWT_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if tokenTTL == 0 {
			tokenTTL = c.TokenTTL
		}

		svc := auth.NewService(c.JWTSecret, tokenTTL)
		if !svc.Enabled() {
			return errors.New("JWT_SECRET is not set")
		}

		tok, err := svc.GenerateToken(models.Principal{
			UserID:     tokenUserID,
			Admin:      tokenAdmin,
			SuperAdmin: tokenSuperAdmin,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Int64Var(&tokenUserID, "user", 0, "user id the token acts as")
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "grant admin")
	tokenCmd.Flags().BoolVar(&tokenSuperAdmin, "super-admin", false, "grant super admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default TOKEN_TTL)")
	tokenCmd.MarkFlagRequired("user")
}
