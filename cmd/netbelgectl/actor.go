package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netbelge/internal/auth"
	"netbelge/internal/config"
	"netbelge/internal/database"
	"netbelge/internal/logging"
	"netbelge/internal/repository/postgres"
	"netbelge/internal/service"
)

func newActorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actor",
		Short: "Manage the accounts that can log in to the API",
	}
	cmd.AddCommand(newActorCreateCmd())
	return cmd
}

func newActorCreateCmd() *cobra.Command {
	var in service.ActorInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an actor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger, err := logging.New(cfg.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			db, err := database.NewPostgres(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewAuthService(
				postgres.NewActorPostgres(db),
				auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes),
				cfg.Auth.BcryptCost,
			)
			actor, err := svc.CreateActor(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created actor %s (%s)\n", actor.Username, actor.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	cmd.Flags().StringVar(&in.Password, "password", "", "password, 8 to 72 bytes")
	cmd.Flags().StringVar(&in.FullName, "full-name", "", "display name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
