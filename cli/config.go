package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mesongui/models"
	"mesongui/storage"
)

func newConfigCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings",
		Long: `View and change the settings shared by the GUI and the command line.

The settings file is stored at ~/.config/mesongui/settings.yaml
(or $XDG_CONFIG_HOME/mesongui/settings.yaml if XDG_CONFIG_HOME is set).

Keys: ` + strings.Join(storage.Keys(), ", "),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				settings, err := env.Storage.LoadSettings()
				if err != nil {
					return fmt.Errorf("failed to load settings: %w", err)
				}
				data, err := yaml.Marshal(settings)
				if err != nil {
					return fmt.Errorf("failed to serialize settings: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one setting",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				settings, err := env.Storage.LoadSettings()
				if err != nil {
					return fmt.Errorf("failed to load settings: %w", err)
				}
				value, err := storage.Get(settings, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := env.Storage.Update(func(s *models.Settings) error {
					return storage.Set(s, args[0], args[1])
				})
				return err
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file path",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), env.Storage.SettingsPath())
			},
		},
	)
	return cmd
}
