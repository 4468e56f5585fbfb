package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardcopy/internal/server"
)

type tokenOptions struct {
	subject string
	email   string
	role    string
}

func newTokenCmd(flags *globalFlags) *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with the configured secret",
		Long:  "Mint an HS256 token for calling POST /api/generate when auth.jwt_secret is set. Intended for development.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(flags, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.subject, "subject", "", "Caller ID stored in the token (required)")
	cmd.Flags().StringVar(&opts.email, "email", "", "Caller email stored in the token")
	cmd.Flags().StringVar(&opts.role, "role", "", "Caller role stored in the token")

	if err := cmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}

	return cmd
}

func runToken(flags *globalFlags, opts *tokenOptions, stdout io.Writer) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	jwtConfig, err := cfg.Auth.JWTConfig()
	if err != nil {
		return fmt.Errorf("cannot mint token: %w", err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(opts.subject, opts.email, opts.role)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(stdout, token)
	return err
}
