// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the tokenlogin CLI.
// It wires configuration, logging, the keychain-backed token store and the
// remote login client together per invocation, and renders the login flow
// in the terminal with pterm.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tokenlogin/cli/internal/auth"
	"tokenlogin/cli/internal/backend"
	"tokenlogin/cli/internal/config"
	"tokenlogin/cli/internal/keychain"
	"tokenlogin/cli/internal/logging"
	"tokenlogin/cli/internal/xdg"
)

var (
	showVersion bool
	verbose     bool
	apiURL      string

	// appConfig is resolved once per invocation by PersistentPreRunE.
	appConfig config.Config
)

// openSecrets opens the namespace that holds auth data. Tests replace it with
// an in-memory keyring.
var openSecrets = func(c config.Config) (auth.Secrets, error) {
	dir := c.Keyring.FileDir
	if dir == "" {
		d, err := xdg.DataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	m, err := keychain.Open(keychain.Options{
		Namespace:  keychain.DefaultNamespace,
		Backend:    c.Keyring.Backend,
		FileDir:    dir,
		Passphrase: c.Keyring.Passphrase,
	})
	if err != nil {
		return nil, err
	}
	logging.Log.Debugw("keychain opened", "namespace", m.Namespace(), "backend", c.Keyring.Backend)
	return m, nil
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "tokenlogin",
	Short:         "Log in with an id and password and keep the session token",
	Long:          `tokenlogin exchanges an id and password for a session token at the configured login server and keeps the token in the OS keychain (or an encrypted file) until you log out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if apiURL != "" {
			c.BaseURL = apiURL
			if err := c.Validate(); err != nil {
				return err
			}
		}
		if err := startLogging(c.LogLevel); err != nil {
			return err
		}
		appConfig = c
		logging.Log.Debugw("config resolved", "base_url", c.BaseURL, "timeout", c.Timeout, "keyring", c.Keyring.Backend)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "tokenlogin %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// startLogging initializes the logger at level, or debug under --verbose.
func startLogging(level string) error {
	if verbose {
		level = "debug"
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	return nil
}

// openRepository builds the auth repository for the resolved config.
func openRepository() (*auth.Repository, error) {
	timeout, err := appConfig.RequestTimeout()
	if err != nil {
		return nil, err
	}
	secrets, err := openSecrets(appConfig)
	if err != nil {
		return nil, err
	}
	remote := backend.New(appConfig.BaseURL,
		backend.WithTimeout(timeout),
		backend.WithUserAgent("tokenlogin-cli/"+Version),
	)
	logging.Log.Debugw("login server", "base_url", remote.BaseURL(), "timeout", timeout)
	return auth.NewRepository(auth.NewStore(secrets), remote), nil
}

// reportedError marks a failure whose notice has already been printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// reportError prints err unless a command already showed it to the user.
func reportError(w io.Writer, err error) {
	var shown reportedError
	if errors.As(err, &shown) {
		logging.Log.Debugw("command failed", "err", logging.Mask(err.Error()))
		return
	}
	pterm.Error.WithWriter(w).Println(logging.PresentError("tokenlogin", err))
}

// Execute runs the CLI application.
func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		logging.Sync()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Login server base URL (overrides config)")
}
