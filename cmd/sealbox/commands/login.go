package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Prove key possession and cache a session secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := appCtx.Accounts.Login(cmd.Context(), passphrase); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", appCtx.Accounts.Username())
			return nil
		},
	}
}
