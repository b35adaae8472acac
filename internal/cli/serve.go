package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sysgraph/pkg/buildinfo"
	"github.com/matzehuels/sysgraph/pkg/components"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// serveCommand loads the full stack including HTTP and blocks until the
// command context is cancelled.
func (c *CLI) serveCommand() *cobra.Command {
	var flags stackFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP system until interrupted",
		Long: `Load the configured systems plus the HTTP system, which serves /healthz,
/systems and /metrics. On SIGINT or SIGTERM every system is destroyed in
reverse dependency order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()
			m := newManager(logger)
			logger.Info("starting "+appName, buildinfo.LogFields()...)

			prog := newProgress(logger)
			if err := components.LoadStack(m, c.stackOptions(&flags, true)); err != nil {
				return stderrors.Join(err, m.Close())
			}
			prog.done("Systems ready")

			srv := systems.Get(m, components.HTTP)
			printSuccess(out, "Serving on %s", StyleHighlight.Render("http://"+srv.Addr()))
			printDetail(out, "Press Ctrl+C to stop")

			<-ctx.Done()
			logger.Info("shutting down")
			return closeManager(out, m)
		},
	}

	flags.register(cmd, true)
	return cmd
}
