// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tokenlogin/cli/internal/config"
	"tokenlogin/cli/internal/logging"
)

// configCmd replaces the root hook so a config that fails validation can
// still be inspected and repaired.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Resolve()
		if err != nil {
			return err
		}
		if err := startLogging(c.LogLevel); err != nil {
			if err := startLogging(config.DefaultLogLevel); err != nil {
				return err
			}
		}
		appConfig = c
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		passphrase := "(unset)"
		if appConfig.Keyring.Passphrase != "" {
			passphrase = "***"
		}
		fmt.Fprintf(out, "base_url:          %s\n", appConfig.BaseURL)
		fmt.Fprintf(out, "log_level:         %s\n", appConfig.LogLevel)
		fmt.Fprintf(out, "timeout:           %s\n", appConfig.Timeout)
		fmt.Fprintf(out, "keyring.backend:   %s\n", appConfig.Keyring.Backend)
		fmt.Fprintf(out, "keyring.file_dir:  %s\n", appConfig.Keyring.FileDir)
		fmt.Fprintf(out, "keyring.passphrase: %s\n", passphrase)
		if err := appConfig.Validate(); err != nil {
			fmt.Fprintln(out)
			pterm.Warning.WithWriter(out).Println(logging.PresentError("invalid configuration", err))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist one setting to config.json",
	Long: `Keys: base_url, log_level, timeout, keyring.backend, keyring.file_dir.
Environment variables (TOKENLOGIN_*) still override what is saved here.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Start from the file alone so env overrides are not written back.
		c, err := config.LoadFile()
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return err
		}
		pterm.Success.Printfln("%s set to %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
