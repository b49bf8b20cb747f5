package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chrisedwards/slack-cli/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the slack-cli configuration file",
		// The token may still be missing while the config is being set up.
		PersistentPreRunE: a.load,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the resolved configuration to a config file",
		Long: `Write the resolved configuration (defaults, environment and flags) to path,
or to ~/.config/slack-cli/slack-cli.yaml when no path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s already exists (use --force to overwrite)", errInvalidFlag, path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}
			if err := a.cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration with the token masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := *a.cfg
			shown.Token = maskToken(shown.Token)
			data, err := yaml.Marshal(&shown)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			out := cmd.OutOrStdout()
			source := a.cfg.ConfigFile()
			if source == "" {
				source = "(defaults and environment)"
			}
			fmt.Fprintf(out, "# source: %s\n", source)
			_, err = out.Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

// maskToken keeps the token type prefix (xoxb-, xoxp-) and hides the rest.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if i := strings.IndexByte(token, '-'); i > 0 && i < 5 {
		return token[:i+1] + "****"
	}
	return "****"
}
