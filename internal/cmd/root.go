// Package cmd holds the lawauth command line.
package cmd

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/law-manager/lawauth/internal/pkg/config"
	"github.com/law-manager/lawauth/pkg/logger"
)

// Version is set at build time with -ldflags.
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lawauth",
		Short: "Law Manager authentication bridge",
		Long: `lawauth serves the Law Manager authentication API. It accepts a username
or an email at login, normalizes identity provider responses into a stable
contract and relays session cookies to the browser.

Configuration is read from the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// Execute runs the root command until ctx is cancelled or the command returns.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// setup loads the configuration and initialises the process logger.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Version: Version,
	})
	return cfg, log, nil
}
