package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/cmdtree/internal/config"
	"github.com/quocvuong92/cmdtree/internal/constants"
	"github.com/quocvuong92/cmdtree/internal/display"
	"github.com/quocvuong92/cmdtree/internal/logging"
	"github.com/quocvuong92/cmdtree/internal/shell"
)

// ErrCommandFailed is returned when a script or -c command ends with a
// negative status. It maps to exit code 1.
var ErrCommandFailed = errors.New("command failed")

// App holds the application state
type App struct {
	configPath  string
	commands    []string
	interactive bool
	verbose     bool
	plain       bool
	render      bool
	logLevel    string
	logFormat   string
	logFile     string

	out    io.Writer
	logOut io.Writer
}

// NewApp creates a new App instance writing to the standard streams
func NewApp() *App {
	return &App{
		out:    os.Stdout,
		logOut: os.Stderr,
	}
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd(NewApp())
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrCommandFailed) {
			display.ShowError(err.Error())
		}
		os.Exit(1)
	}
}

// NewRootCmd builds the cobra command tree for app
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cmdtree [script...]",
		Short: "A nested command interpreter",
		Long: `cmdtree is a nested command interpreter with prefix completion, argument
hints, aligned help and script sourcing.

Scripts given as arguments are sourced in order, then each -c command runs.
Without scripts or commands an interactive session starts.

Examples:
  cmdtree                               # Interactive mode
  cmdtree --plain                       # Interactive with the plain line editor
  cmdtree setup.cmd                     # Source a script and exit
  cmdtree -c "log level debug" -c help  # Run commands and exit
  cmdtree -i setup.cmd                  # Source a script, then stay interactive`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Config file (default: search .cmdtree/ and the user config directory)")
	rootCmd.Flags().StringArrayVarP(&app.commands, "command", "c", nil, "Run a command line (repeatable)")
	rootCmd.Flags().BoolVarP(&app.interactive, "interactive", "i", false, "Stay interactive after scripts and commands")
	rootCmd.Flags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&app.plain, "plain", false, "Use the plain line editor (liner)")
	rootCmd.Flags().BoolVarP(&app.render, "render", "r", false, "Render help with markdown formatting")
	rootCmd.Flags().StringVar(&app.logLevel, "log-level", "", "Log level: debug, info, warn, error, none")
	rootCmd.Flags().StringVar(&app.logFormat, "log-format", "", "Log format: text or json")
	rootCmd.Flags().StringVar(&app.logFile, "log-file", "", "Log file (- for stderr)")

	// Add subcommands
	rootCmd.AddCommand(NewConfigCmd(app))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// loadConfig loads the layered config and applies flags that were set
func (app *App) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = app.logLevel
	}
	if app.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = app.logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = app.logFile
	}
	if app.plain {
		cfg.Editor = constants.EditorLiner
	}
	if flags.Changed("render") {
		cfg.Render = app.render
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg
func (app *App) newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel(),
		Format: cfg.LogFormat(),
		Output: app.logOut,
	})
	if cfg.Log.File != config.DefaultLogFile {
		if err := logger.SetOutputFile(cfg.Log.File); err != nil {
			return nil, err
		}
	}
	return logger, nil
}

func (app *App) run(cmd *cobra.Command, args []string) error {
	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := app.newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	sh, err := shell.New(shell.Options{Config: cfg, Logger: logger, Out: app.out})
	if err != nil {
		return err
	}
	defer func() {
		if err := sh.Close(); err != nil {
			display.ShowWarning(fmt.Sprintf("Could not save history: %v", err))
		}
	}()

	logger.Debug("starting", logging.Fields{
		"config":  cfg.Source,
		"scripts": len(args),
		"command": len(app.commands),
	})

	if status := sh.RunStartup(); status < 0 {
		return fmt.Errorf("%w: startup script returned %d", ErrCommandFailed, status)
	}

	for _, path := range args {
		if sh.Stopped() {
			return nil
		}
		if status := sh.RunScript(path); status < 0 {
			return fmt.Errorf("%w: %s returned %d", ErrCommandFailed, path, status)
		}
	}

	for _, line := range app.commands {
		if sh.Stopped() {
			return nil
		}
		if status := sh.RunLine(line); status < 0 {
			return fmt.Errorf("%w: %q returned %d", ErrCommandFailed, line, status)
		}
	}

	batch := len(args) > 0 || len(app.commands) > 0
	if sh.Stopped() || (batch && !app.interactive) {
		return nil
	}

	if display.IsTTY() && display.IsStdoutTTY() {
		display.ShowBanner(constants.AppName, Version)
		display.ShowInfo("Type help for commands, quit to leave.")
	}
	return sh.Run()
}
