package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// send <peer> <message>: encrypt-on-relay delivery to <peer>'s mailbox.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Send a message to a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := appCtx.Messages.Send(cmd.Context(), passphrase, args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("sent")
			return nil
		},
	}
}
