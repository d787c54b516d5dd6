// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd wipes every persisted auth value, not only the token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session token and all other auth data",
	Long: `The logout command clears the whole private auth namespace in the keychain.
Nothing is sent to the server; the token is simply forgotten locally.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		if err := repo.Logout(cmd.Context()); err != nil {
			return err
		}
		pterm.Success.Println("Logged out. All stored auth data has been removed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
