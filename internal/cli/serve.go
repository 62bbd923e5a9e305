package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/moneyflow/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render HTTP API",
		Long: `Serve the layout and render HTTP API.

Routes:
  GET  /healthz
  POST /v1/layout?width=&height=
  POST /v1/render?format=svg|png|pdf|json&style=&width=&height=

The cache backend comes from config (file, redis, mongo or none). The server
stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Listening on %s (cache: %s)", StyleHighlight.Render(cfg.Addr), c.Config.Cache.Backend)
			return server.New(runner, c.Logger).ListenAndServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: from config, :8080)")
	return cmd
}
