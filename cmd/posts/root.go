package main

import (
	"github.com/aussiebroadwan/posts/internal/posts/app"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var envFile string

// NewRootCmd creates the root command for the posts CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Posts service with bearer-session authentication",
		Long: `Posts serves a small users-and-posts HTTP API. Users register and log in
with a username and password and receive HS384 bearer tokens.

Configuration comes from the environment, optionally loaded from a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.LoadEnvFile(envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			application, err := app.New(app.LoadConfig())
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations to the configured database and exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Migrate(app.LoadConfig()); err != nil {
				return err
			}
			cmd.Println("Migrations completed successfully")
			return nil
		},
	}
}
