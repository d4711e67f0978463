package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "netbelgectl",
		Short: "netbelgectl manages a NetBelge installation",
		Long: `netbelgectl checks storage paths the way the API does, applies the
database schema and creates accounts.

Database settings are read from the same environment variables as the API
(DB_HOST, DB_USER, ...); a .env file in the working directory is loaded first.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newNormalizeCmd(),
		newValidateCmd(),
		newMigrateCmd(),
		newActorCmd(),
	)
	return root
}
