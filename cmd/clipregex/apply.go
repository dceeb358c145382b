package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"clipregex/internal/replace"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the configured rules to stdin and print the result",
	Long: `Read text from stdin, apply the replacement rules from the config file and
write the result to stdout. The clipboard is not touched.

Examples:
  echo "foo foo" | clipregex apply
  clipregex apply --config rules.yaml < notes.txt`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := newLoader(logger).Read()
	if err != nil {
		return err
	}

	in, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return errors.Wrap(err, "reading stdin")
	}

	out, err := replace.Apply(string(in), cfg.Replacements)
	if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.OutOrStdout(), out)

	return errors.Wrap(err, "writing stdout")
}
