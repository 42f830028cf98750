// Package cli is the stockmaster command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"stockmaster/internal/app"
	"stockmaster/internal/config"
	"stockmaster/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// DefaultPreferencesFile is used by the prefs command when no
// preferences.path is configured.
const DefaultPreferencesFile = "stockmaster-preferences.toml"

type rootOptions struct {
	configPath string
}

// NewRootCmd builds the stockmaster command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "stockmaster",
		Short:         "Warehouse profit reports and inventory records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to a stockmaster.toml file (default ./stockmaster.toml when present)")

	cmd.AddCommand(
		newSummaryCmd(opts),
		newServeCmd(opts),
		newPrefsCmd(opts),
		newDBCmd(opts),
	)
	return cmd
}

// Execute runs the command tree against ctx and returns the first error.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()), nil
}

func (o *rootOptions) build(cmd *cobra.Command, cfg *config.Config, logger zerolog.Logger) (app.ApplicationService, func(), error) {
	return app.Build(cmd.Context(), cfg, logger)
}
