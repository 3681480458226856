package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the configuration file",
	Long: `Show the effective configuration or change a single key in the config file.

Keys:
  ` + strings.Join(config.Keys(), "\n  "),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "# %s\n", path)

		session, err := app.config.SessionConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# effective: %dm work, %dm short break, %dm long break, long break every %d\n",
			session.WorkMinutes, session.ShortBreakMinutes, session.LongBreakMinutes, session.SessionsBeforeLongBreak)

		for _, line := range config.Describe(app.config) {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a single key to the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Set(configPath, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", args[0], err)
		}
		app.config = cfg

		fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
