package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pull: drain and decrypt queued messages.
func pullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch and decrypt your queued messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			entries, err := appCtx.Messages.Pull(cmd.Context(), passphrase)
			if err != nil {
				return err
			}
			for _, m := range entries {
				fmt.Println(formatEntry(m))
			}
			return nil
		},
	}
}
