package main

import (
	"context"
	"errors"

	"github.com/notespath/backend/internal/app"
	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/gateway"
	"github.com/notespath/backend/internal/logger"
	"github.com/notespath/backend/internal/models"
	"github.com/notespath/backend/internal/services"
	"github.com/notespath/backend/internal/session"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:           "notes",
		Short:         "Notes shares study materials from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")

	cmd.AddCommand(
		newSignInCmd(cfg, &jsonOutput),
		newSignUpCmd(cfg, &jsonOutput),
		newSignOutCmd(cfg),
		newProfileCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newShowCmd(cfg, &jsonOutput),
		newShareCmd(cfg, &jsonOutput),
		newUploadCmd(cfg, &jsonOutput),
		newDeleteCmd(cfg),
		newSubjectsCmd(cfg, &jsonOutput),
		newOptionsCmd(cfg, &jsonOutput),
	)

	return cmd
}

// env is the process-wide state of a command run
type env struct {
	app     *app.App
	auth    *gateway.AuthClient
	session *session.Context
	catalog *services.Catalog
}

// withEnv wires the application, restores the persisted session and runs fn
func withEnv(ctx context.Context, cfg *config.Config, fn func(e *env) error) error {
	application, err := app.New(ctx, cfg, logger.Logger)
	if err != nil {
		return err
	}
	defer application.Close()

	sessionFile := cfg.SessionFile
	if sessionFile == "" {
		sessionFile, err = gateway.DefaultSessionFile()
		if err != nil {
			return err
		}
	}

	client := gateway.NewAuthClient(application.Auth, gateway.NewFileStore(sessionFile), logger.Logger)
	sc := session.New(client, logger.Logger)
	defer sc.Close()
	sc.Start(ctx)

	select {
	case <-sc.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	return fn(&env{
		app:     application,
		auth:    client,
		session: sc,
		catalog: services.NewCatalog(application.Catalog),
	})
}

// requireIdentity returns the signed-in user or an auth error
func (e *env) requireIdentity() (*models.Identity, error) {
	identity := e.session.Identity()
	if identity == nil {
		return nil, errors.Join(models.ErrAuth, errors.New("not signed in, run notes signin"))
	}
	return identity, nil
}

// viewerID returns the id of the signed-in user, or an empty string
func (e *env) viewerID() string {
	if identity := e.session.Identity(); identity != nil {
		return identity.ID
	}
	return ""
}
