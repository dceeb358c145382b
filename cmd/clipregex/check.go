package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"clipregex/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config file and every rule",
	Long: `Load the config file strictly and compile every rule.

Unlike the tray, which falls back to an empty rule list on any error, check
reports the problem and exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("")
	if err != nil {
		return err
	}
	defer closeLog()

	loader := newLoader(logger)

	cfg, err := loader.Read()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Config: %s\nHotkey: %s\nNotifications: %t\n\n", loader.Path(), cfg.Hotkey, cfg.UseNotifications)

	if len(cfg.Replacements) == 0 {
		fmt.Fprintln(out, "No replacement rules configured.")

		return nil
	}

	failed, err := report.RenderRules(out, cfg.Replacements)
	if err != nil {
		return errors.Wrap(err, "rendering rule table")
	}

	if failed > 0 {
		return errors.Newf("%d of %d rules are invalid", failed, len(cfg.Replacements))
	}

	return nil
}

