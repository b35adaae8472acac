package cli

import (
	stderrors "errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sysgraph/pkg/components"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// demoCommand loads the four-step chain and shows construction and
// destruction order.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Show load and destroy order for a small dependency chain",
		Long: `Load "fourth", which needs "second" and "third"; "second" in turn needs
"first". Each step prints when it is loaded and destroyed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			m := newManager(loggerFromContext(cmd.Context()))
			return runDemo(out, m, components.NewChain(out))
		},
	}
}

// runDemo loads chain.Fourth into m, prints the dependencies to out and tears
// m down. m is torn down on every path.
func runDemo(out io.Writer, m *systems.Manager, chain *components.Chain) error {
	printInfo(out, "Loading %s", StyleHighlight.Render(string(chain.Fourth.Key)))
	if _, err := systems.Load(m, chain.Fourth); err != nil {
		return stderrors.Join(err, m.Close())
	}
	if err := printManager(out, m); err != nil {
		return stderrors.Join(err, m.Close())
	}

	printInfo(out, "Tearing down")
	return closeManager(out, m)
}
