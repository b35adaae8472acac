// Package cli implements the sysgraph command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sysgraph/pkg/buildinfo"
	"github.com/matzehuels/sysgraph/pkg/components"
	"github.com/matzehuels/sysgraph/pkg/systems"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "sysgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// logOut is where the logger and the logging system write.
	logOut io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sysgraph loads systems in dependency order and tears them down in reverse",
		Long:         `Sysgraph is a host for dependency-ordered systems: each system loads its prerequisites on demand, and shutdown destroys every live system after everything that depends on it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.depsCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Manager Factory
// =============================================================================

// newManager creates a Manager that logs lifecycle events through l.
func newManager(l *log.Logger) *systems.Manager {
	return systems.New(systems.WithLogger(l))
}

// stackFlags are the configuration flags shared by deps and serve.
type stackFlags struct {
	config   string
	addr     string
	logLevel string
}

func (f *stackFlags) register(cmd *cobra.Command, withAddr bool) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "configuration file (.toml, .yaml or .yml)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "override log.level from the configuration")
	if withAddr {
		cmd.Flags().StringVar(&f.addr, "addr", "", "override http.addr from the configuration")
	}
}

func (c *CLI) stackOptions(f *stackFlags, serve bool) components.StackOptions {
	level := f.logLevel
	if level == "" && c.Logger.GetLevel() == log.DebugLevel {
		level = "debug"
	}
	return components.StackOptions{
		Source: components.Source{
			Path:     f.config,
			Addr:     f.addr,
			LogLevel: level,
		},
		LogOutput: c.logOut,
		Serve:     serve,
	}
}
