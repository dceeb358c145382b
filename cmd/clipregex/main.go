// Command clipregex applies regex replacement rules to the clipboard when a
// global hotkey is pressed, and pastes the result.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"clipregex/internal/config"
	"clipregex/internal/logging"
)

var (
	configPath string
	logFile    string
	logLevel   string
	debugMode  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clipregex",
	Short: "Rewrite the clipboard with regex rules on a hotkey",
	Long: `clipregex runs in the system tray. When the configured hotkey is pressed it
reads the clipboard text, applies the replacement rules from the config file
in order, writes the result back and pastes it into the focused window.

Rules are re-read on every trigger, so edits apply without a restart.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE:              runDaemon,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to the config file (default: $"+config.EnvConfigPath+" or "+config.DefaultPath()+")",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFile,
		"log-file",
		"",
		"Log file path, or - for stderr (default: "+logging.DefaultPath()+" for the tray, none for commands)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		os.Getenv("CLIPREGEX_LOG_LEVEL"),
		"Log level: debug, info, warn, error",
	)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Shorthand for --log-level=debug")
}

// newLogger opens the logger selected by the persistent flags. fallback is
// used when --log-file is not given; an empty fallback discards logs.
func newLogger(fallback string) (*slog.Logger, func() error, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}

	if debugMode {
		level = slog.LevelDebug
	}

	path := logFile
	if path == "" {
		path = fallback
	}

	if path == "" {
		return logging.Discard(), func() error { return nil }, nil
	}

	logger, closeFn, err := logging.New(logging.Options{Path: path, Level: level})
	if err != nil {
		return nil, nil, errors.Wrap(err, "setting up logging")
	}

	return logger, closeFn, nil
}

func resolvedConfigPath() string {
	return config.ResolvePath(configPath)
}
