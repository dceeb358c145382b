package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"clipregex/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config file with the default hotkey and an example rule.

An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func starterConfig() *config.Config {
	cfg := config.Default()
	cfg.Replacements = []config.Rule{
		{Regex: `(?m)[ \t]+$`, ReplaceWith: ""},
	}

	return cfg
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := resolvedConfigPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.Newf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, starterConfig()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)

	return nil
}

func newLoader(logger *slog.Logger) *config.Loader {
	return config.NewLoader(resolvedConfigPath(), logger)
}
