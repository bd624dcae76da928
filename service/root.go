// Package service holds the gazette command line: the HTTP server plus the
// database maintenance commands.
package service

import (
	"context"

	"gazette/app/config"
	"gazette/app/logger"
	"gazette/app/repositories"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "gazette",
	Short:         "Posts and comments backend with a slow comments serializer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.IsProduction())
		return nil
	},
}

// Execute runs the command named by the process arguments.
func Execute() error {
	return rootCmd.Execute()
}

// openStore opens the configured storage driver.
func openStore(ctx context.Context) (*repositories.Store, error) {
	return repositories.Open(ctx, cfg.Storage, log)
}
