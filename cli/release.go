package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mesongui/meson"
)

func newReleaseCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "release",
		Short: "Compare the installed meson with the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := env.Storage.LoadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			inv, err := env.Registry.Build(meson.Version, meson.Params{Meson: settings.Meson})
			if err != nil {
				return err
			}

			res := env.Runner.Run(cmd.Context(), inv)
			if !res.OK() {
				fmt.Fprint(cmd.ErrOrStderr(), res.Message())
				return errors.New("could not determine the installed meson version")
			}

			info, err := env.Monitor.Check(cmd.Context(), res.Stdout)
			if err != nil {
				return fmt.Errorf("release check: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.Description())
			return nil
		},
	}
}
