package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sysgraph/pkg/components"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// depsCommand loads the configured systems, prints their dependencies and
// tears them down again.
func (c *CLI) depsCommand() *cobra.Command {
	var flags stackFlags

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Load the configured systems and print their dependencies",
		Long: `Load settings, logging, metrics and every enabled backend, print the
dependency graph the systems declared while loading, then destroy them in
reverse dependency order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			m := newManager(logger)

			prog := newProgress(logger)
			if err := components.LoadStack(m, c.stackOptions(&flags, false)); err != nil {
				return stderrors.Join(err, m.Close())
			}
			prog.done(fmt.Sprintf("Loaded %d systems", m.Len()))

			source := flags.config
			if source == "" {
				source = "defaults"
			}
			printKeyValue(out, "config", source)
			printKeyValue(out, "systems", strconv.Itoa(m.Len()))

			if err := printManager(out, m); err != nil {
				return stderrors.Join(err, m.Close())
			}
			return closeManager(out, m)
		},
	}

	flags.register(cmd, false)
	return cmd
}

// printManager prints the dependency dump of m.
func printManager(w io.Writer, m *systems.Manager) error {
	var buf bytes.Buffer
	if err := m.DumpDependencies(&buf); err != nil {
		return err
	}
	return printDependencies(w, buf.String())
}

// closeManager tears m down and reports the outcome.
func closeManager(w io.Writer, m *systems.Manager) error {
	n := m.Len()
	if err := m.Close(); err != nil {
		printWarning(w, "teardown finished with errors")
		return err
	}
	printSuccess(w, "Destroyed %d systems", n)
	return nil
}
