package main

import (
	"context"

	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/models"
	"github.com/spf13/cobra"
)

func newSignInCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return newCredentialsCmd(cfg, jsonOutput, "signin", "Sign in with email and password",
		func(ctx context.Context, e *env, email, password string) (*models.Session, error) {
			return e.auth.SignIn(ctx, email, password)
		})
}

func newSignUpCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return newCredentialsCmd(cfg, jsonOutput, "signup", "Create an account with email and password",
		func(ctx context.Context, e *env, email, password string) (*models.Session, error) {
			return e.auth.SignUp(ctx, email, password)
		})
}

type authenticateFunc func(ctx context.Context, e *env, email, password string) (*models.Session, error)

func newCredentialsCmd(cfg *config.Config, jsonOutput *bool, use, short string, authenticate authenticateFunc) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				s, err := authenticate(cmd.Context(), e, email, password)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), s.User)
				}
				return writePlain(cmd.OutOrStdout(), "signed in as %s\n", s.User.Email)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newSignOutCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				if err := e.session.SignOut(cmd.Context()); err != nil {
					return err
				}
				return writePlain(cmd.OutOrStdout(), "signed out\n")
			})
		},
	}
}

func newProfileCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), cfg, func(e *env) error {
				identity, err := e.requireIdentity()
				if err != nil {
					return err
				}

				profile := models.NewProfile(*identity)
				if *jsonOutput {
					return writeJSON(cmd.OutOrStdout(), profile)
				}
				return writePlain(cmd.OutOrStdout(), "[%s] %s\n", profile.Initial, profile.Email)
			})
		},
	}
}
