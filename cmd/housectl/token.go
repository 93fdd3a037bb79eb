package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/house-services-backend/internal/config"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for the write endpoints",
	Long: `Sign an HS256 access token with JWT_SECRET_KEY. The API only checks tokens
when JWT_SECRET_KEY is set.`,
	Example: `  housectl token --subject payroll-operator --ttl 8h`,
	RunE:    runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringP("subject", "s", "", "Token subject, usually the operator or client name")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_ACCESS_EXPIRATION_TIME)")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	jwtCfg, err := config.LoadJWT()
	if err != nil {
		return err
	}
	if jwtCfg.Secret == "" {
		return errors.New("JWT_SECRET_KEY is not set")
	}
	if ttl <= 0 {
		ttl = jwtCfg.AccessExpiration
	}

	token, expiresAt, err := jwt.NewJWTService(jwtCfg.Secret, ttl).GenerateAccessToken(subject)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
