package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd prints a machine-friendly login status for scripts.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print logged_in or logged_out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		ok, err := repo.IsLoggedIn(cmd.Context())
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), "logged_in")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "logged_out")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
