package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/adapters/git"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/logging"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// appDeps groups the dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	git        ports.GitDetector
	workingDir string
	logFile    string
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices loads the config, applies flag overrides and sets up
// logging. Sessions are created by the commands that run one.
func initializeServices(cmd *cobra.Command) error {
	cfg, loadErr := config.Load(configPath)
	if loadErr != nil {
		// If config loading fails, use defaults
		cfg = config.DefaultConfig()
	}

	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	app.config = cfg

	logFile, err := logging.Initialize(cfg.Logging.Debug, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	app.logFile = logFile
	if loadErr != nil {
		logging.Logger.Warn("Using default config", "error", loadErr)
	}

	app.workingDir, _ = os.Getwd()
	app.git = git.NewDetector(app.workingDir)

	return nil
}

// applyFlagOverrides layers explicitly set flags over the file values. A
// preset is applied first so individual minute flags can adjust it.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("preset") {
		if _, err := domain.ValidatePreset(presetFlag); err != nil {
			return err
		}
		cfg.Timer.Preset = presetFlag
	}

	if flags.Changed("work") || flags.Changed("short-break") || flags.Changed("long-break") || flags.Changed("sessions") {
		session, err := cfg.SessionConfig()
		if err != nil {
			return err
		}
		if flags.Changed("work") {
			session.WorkMinutes = workMinutes
		}
		if flags.Changed("short-break") {
			session.ShortBreakMinutes = shortBreakMinutes
		}
		if flags.Changed("long-break") {
			session.LongBreakMinutes = longBreakMinutes
		}
		if flags.Changed("sessions") {
			session.SessionsBeforeLongBreak = sessionsFlag
		}
		cfg.SetSessionConfig(session)
	}

	if flags.Changed("auto-advance") {
		cfg.Timer.AutoAdvance = autoAdvanceFlag
	}
	if flags.Changed("debug") {
		cfg.Logging.Debug = debugFlag
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFileFlag
	}
	return nil
}

// newSession builds the session from the effective config and queues the
// tasks given with --task.
func newSession() (*services.SessionService, error) {
	sessionCfg, err := app.config.SessionConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid timer config: %w", err)
	}

	session := services.NewSessionService(sessionCfg, services.SessionOptions{
		AutoAdvance: app.config.Timer.AutoAdvance,
	})
	for _, content := range taskFlags {
		if out := session.Enqueue(content); !out.Applied {
			session.Close()
			return nil, fmt.Errorf("invalid --task %q: %w", content, domain.ErrEmptyTaskContent)
		}
	}

	logging.Logger.Info("Session created",
		"work_minutes", sessionCfg.WorkMinutes,
		"short_break_minutes", sessionCfg.ShortBreakMinutes,
		"long_break_minutes", sessionCfg.LongBreakMinutes,
		"sessions_before_long_break", sessionCfg.SessionsBeforeLongBreak,
		"auto_advance", app.config.Timer.AutoAdvance,
		"tasks", len(taskFlags),
	)
	return session, nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logFile != "" {
		logging.Logger.Debug("Shutting down")
	}
	return logging.Close()
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
