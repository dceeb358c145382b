package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipregex/internal/startup"
)

var startupCmd = &cobra.Command{
	Use:   "startup",
	Short: "Manage starting clipregex when you log in",
}

var startupEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start clipregex at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := startup.Enable(); err != nil {
			return err
		}

		return printStartupStatus(cmd)
	},
}

var startupDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting clipregex at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := startup.Disable(); err != nil {
			return err
		}

		return printStartupStatus(cmd)
	},
}

var startupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether clipregex starts at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printStartupStatus(cmd)
	},
}

func init() {
	startupCmd.AddCommand(startupEnableCmd, startupDisableCmd, startupStatusCmd)
	rootCmd.AddCommand(startupCmd)
}

func printStartupStatus(cmd *cobra.Command) error {
	path, err := startup.Path()
	if err != nil {
		return err
	}

	state := "disabled"
	if startup.IsEnabled() {
		state = "enabled"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Start on login: %s (%s)\n", state, path)

	return nil
}
