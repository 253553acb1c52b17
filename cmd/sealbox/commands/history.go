package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sealbox/internal/domain"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the local message history",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range appCtx.Messages.History() {
				fmt.Println(formatEntry(m))
			}
			return nil
		},
	}
}

func formatEntry(m domain.MailEntry) string {
	stamp := m.ServerTime
	if stamp == "" {
		stamp = m.ClientTime
	}
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		stamp = t.Local().Format("01/02 15:04")
	}
	return fmt.Sprintf("%s %s -> %s: %s", stamp, m.FromUsername, m.ToUsername, m.Text)
}
