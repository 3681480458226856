// Package cmd provides the CLI commands for pomo.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/adapters/git"
	"github.com/xvierd/pomo/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath        string
	workMinutes       int
	shortBreakMinutes int
	longBreakMinutes  int
	sessionsFlag      int
	presetFlag        string
	taskFlags         []string
	autoAdvanceFlag   bool
	debugFlag         bool
	logFileFlag       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - A Pomodoro timer with a task queue",
	Long: `pomo is a terminal Pomodoro timer. Work, short break and long break
intervals cycle forever while a queue of tasks tracks what you are doing.

Run "pomo" with no arguments to open the interactive timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomo/config.toml)")
	flags.IntVar(&workMinutes, "work", 0, "Work interval length in minutes")
	flags.IntVar(&shortBreakMinutes, "short-break", 0, "Short break length in minutes")
	flags.IntVar(&longBreakMinutes, "long-break", 0, "Long break length in minutes")
	flags.IntVar(&sessionsFlag, "sessions", 0, "Work sessions before a long break")
	flags.StringVar(&presetFlag, "preset", "", "Interval preset: classic, extended, sprint")
	flags.StringArrayVarP(&taskFlags, "task", "t", nil, "Queue a task at launch (repeatable)")
	flags.BoolVar(&autoAdvanceFlag, "auto-advance", false, "Take the next queued task when a work interval begins")
	flags.BoolVar(&debugFlag, "debug", false, "Write debug logs")
	flags.StringVar(&logFileFlag, "log-file", "", "Debug log file (default: ~/.pomo/logs/pomo.log)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// runTUI opens the fullscreen timer.
func runTUI(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	timer := tui.NewTimer(session, tui.Options{
		Theme:    &app.config.Theme,
		GitLabel: git.DetectLabel(ctx, app.git, app.workingDir),
	})
	if err := timer.Run(ctx); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}
	return nil
}
