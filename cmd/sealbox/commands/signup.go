package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username>",
		Short: "Create a key pair and register with the relay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := appCtx.Accounts.Signup(cmd.Context(), args[0], passphrase); err != nil {
				return err
			}
			fmt.Printf("Signed up as %s\n", args[0])
			return nil
		},
	}
}
