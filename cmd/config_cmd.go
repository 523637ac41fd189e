package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/cmdtree/internal/config"
)

// NewConfigCmd creates the config command and its subcommands
func NewConfigCmd(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Long: `Manage the cmdtree configuration file.

Settings are layered: built-in defaults, then the config file, then
CMDTREE_* environment variables, then command-line flags.`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write a commented default config file to the user config directory.

An existing file is never overwritten.

Examples:
  cmdtree config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists: %s\n", path)
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as YAML, after applying the config
file and environment.

Examples:
  cmdtree config show
  cmdtree --config ./dev.yaml config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Source != "" {
				fmt.Fprintf(out, "# loaded from %s\n", cfg.Source)
			} else {
				fmt.Fprintln(out, "# no config file found, showing defaults")
			}
			_, err = out.Write(data)
			return err
		},
	})

	return configCmd
}
