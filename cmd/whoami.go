package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tokenlogin/cli/internal/logging"
)

var whoamiShowToken bool

// whoamiCmd shows the stored session, mirroring the user info screen.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session token",
	Long: `The whoami command reads the session token from the keychain. The token is
masked unless --show is given. Nothing is sent to the server.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		token, err := repo.CurrentToken(cmd.Context())
		if err != nil {
			return err
		}
		if token == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "🔒 You're not logged in yet!")
			fmt.Fprintln(cmd.OutOrStdout(), "   Run 'tokenlogin login' to get started.")
			return nil
		}

		shown := logging.MaskToken(token)
		if whoamiShowToken {
			shown = token
		}
		pterm.Info.Println("Logged in")
		fmt.Fprintf(cmd.OutOrStdout(), "Token: %s\n", shown)
		return nil
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiShowToken, "show", false, "Print the full token")
	rootCmd.AddCommand(whoamiCmd)
}
