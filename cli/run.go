package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mesongui/meson"
	"mesongui/models"
	"mesongui/runner"
	"mesongui/scan"
)

type runFlags struct {
	source  string
	build   string
	options string
}

func newRunCommand(env *Env) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run <operation>",
		Short: "Run one meson or ninja operation",
		Long: `Run a single operation and stream its output to stdout.

The build directory defaults to the build_dir setting inside the source
directory. When that is not configured yet, an existing build directory
found below the source directory is used instead. The process exits with the child's exit code when it fails.

Operations: ` + strings.Join(operationNames(env.Registry), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(cmd, args[0], flags)
		},
	}
	cmd.Flags().StringVarP(&flags.source, "source", "s", ".", "source directory")
	cmd.Flags().StringVarP(&flags.build, "build", "b", "", "build directory")
	cmd.Flags().StringVarP(&flags.options, "options", "o", "", "extra arguments, split on whitespace")
	return cmd
}

func (e *Env) run(cmd *cobra.Command, name string, flags runFlags) error {
	op, err := e.Registry.ParseOperation(name)
	if err != nil {
		return err
	}
	settings, err := e.Storage.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	source, err := filepath.Abs(models.CleanPath(flags.source))
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	project := models.NewProject(source, settings.BuildDir)
	if build := models.CleanPath(flags.build); build != "" {
		if build, err = filepath.Abs(build); err != nil {
			return fmt.Errorf("build directory: %w", err)
		}
		project.SetBuildDir(build)
	} else if op != meson.Setup {
		project.BuildDir = scan.PreferredBuildDir(source, settings.BuildDir)
	}

	params := meson.ParamsFrom(project, settings, flags.options)
	if err := meson.Check(op, params); err != nil {
		return err
	}
	inv, err := e.Registry.Build(op, params)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	fmt.Fprint(errOut, meson.Header(op, params))
	res := e.Runner.Stream(cmd.Context(), inv, func(line string) {
		fmt.Fprint(out, line)
	})

	switch res.Status {
	case runner.StatusCompleted:
		return nil
	case runner.StatusFailed:
		fmt.Fprint(errOut, res.Message())
		return NewExitCodeError(res.ExitCode)
	default:
		return errors.New(res.Error)
	}
}

func newOpsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List operations and the commands they run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sample := meson.Params{SourceDir: "<source>", BuildDir: "<build>", Options: "[options]"}
			out := cmd.OutOrStdout()
			for _, op := range env.Registry.Operations() {
				inv, err := env.Registry.Build(op, sample)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-11s %-40s %s\n", op, inv.String(), env.Registry.Summary(op))
			}
			return nil
		},
	}
}

func operationNames(r *meson.Registry) []string {
	var names []string
	for _, op := range r.Operations() {
		names = append(names, string(op))
	}
	return names
}
