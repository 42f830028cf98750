package cli

import (
	"os"
	"os/signal"
	"syscall"

	"stockmaster/internal/adapters/web"

	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			svc, cleanup, err := root.build(cmd, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := web.NewHandler(svc, logger, cfg.Server.Origins())
			return web.NewServer(cfg.Server.Addr(), handler, logger).Run(ctx)
		},
	}
}
