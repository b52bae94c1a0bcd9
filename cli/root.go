// Package cli implements the mesongui command line. Without a subcommand
// it launches the graphical interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mesongui/logging"
	"mesongui/meson"
	"mesongui/monitor"
	"mesongui/runner"
	"mesongui/storage"
	"mesongui/version"
)

// GUIOptions is passed to the GUI launcher.
type GUIOptions struct {
	SourceDir string
	Storage   *storage.Manager
	Runner    *runner.Runner
}

// GUIFunc opens the graphical interface and blocks until it is closed.
type GUIFunc func(GUIOptions) error

// Env holds the dependencies shared by all commands.
type Env struct {
	Storage  *storage.Manager
	Runner   *runner.Runner
	Registry *meson.Registry
	Monitor  *monitor.ReleaseMonitor
	GUI      GUIFunc

	logLevel  string
	logFile   string
	logCloser io.Closer
}

// DefaultEnv returns an Env wired to the real filesystem, processes and network.
func DefaultEnv(gui GUIFunc) *Env {
	return &Env{
		Storage:  storage.NewManager(),
		Runner:   runner.New(),
		Registry: meson.DefaultRegistry(),
		Monitor:  monitor.NewReleaseMonitor(),
		GUI:      gui,
	}
}

// Close releases the log file opened for the command.
func (e *Env) Close() {
	if e.logCloser == nil {
		return
	}
	log.SetOutput(os.Stderr)
	if err := e.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
	}
	e.logCloser = nil
}

// NewRootCommand builds the command tree around env.
func NewRootCommand(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "mesongui [source-dir]",
		Short: "Graphical front-end for meson and ninja",
		Long: `mesongui runs meson and ninja on a project and streams their output.

Without a subcommand it opens the graphical interface, optionally with the
source directory preselected. The run subcommand performs a single operation
from the terminal.`,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.configureLogging(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.GUI == nil {
				return errors.New("graphical interface is not available in this build")
			}
			opts := GUIOptions{Storage: env.Storage, Runner: env.Runner}
			if len(args) == 1 {
				opts.SourceDir = args[0]
			}
			log.WithField("source", opts.SourceDir).Info("starting Meson Build GUI")
			return env.GUI(opts)
		},
	}

	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "log level (default from settings)")
	root.PersistentFlags().StringVar(&env.logFile, "log-file", logging.DefaultLogPath(), "log file path, empty to disable")

	root.AddCommand(
		newRunCommand(env),
		newOpsCommand(env),
		newConfigCommand(env),
		newReleaseCommand(env),
	)
	return root
}

// configureLogging applies the level from the flag or the settings file.
func (e *Env) configureLogging(console io.Writer) error {
	e.Close()
	level := e.logLevel
	if level == "" {
		if settings, err := e.Storage.LoadSettings(); err == nil {
			level = settings.LogLevel
		}
	}
	closer, err := logging.Configure(level, e.logFile, console)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	e.logCloser = closer
	return nil
}

// Execute runs the command line with the given GUI launcher. Interrupts
// cancel running operations.
func Execute(gui GUIFunc) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := DefaultEnv(gui)
	defer env.Close()

	err := NewRootCommand(env).ExecuteContext(ctx)
	var exitErr *ExitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
