package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sealbox/internal/domain"
	"sealbox/internal/services/message"
)

// chat: interactive loop. A background poller drains the mailbox every
// DefaultPollInterval while the foreground reads lines to send.
func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <peer>",
		Short: "Chat interactively with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			peer := args[0]
			me := appCtx.Accounts.Username()
			if me == "" {
				return fmt.Errorf("no identity stored, sign up first")
			}
			if err := appCtx.Accounts.Login(cmd.Context(), passphrase); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			poller := &message.Poller{
				Messages:   appCtx.Messages,
				Passphrase: passphrase,
				OnMail: func(entries []domain.MailEntry) {
					fmt.Println()
					for _, m := range entries {
						fmt.Println(formatEntry(m))
					}
					fmt.Printf("%s -> %s: ", me, peer)
				},
				OnError: func(err error) {
					fmt.Fprintf(os.Stderr, "\npoll: %v\n", err)
				},
			}
			go poller.Run(ctx)

			fmt.Printf("Chatting with %s. Type to send, /q to quit.\n", peer)
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Printf("%s -> %s: ", me, peer)
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "/q", "/quit", "/exit":
					return nil
				}
				if err := appCtx.Messages.Send(ctx, passphrase, peer, line); err != nil {
					fmt.Fprintf(os.Stderr, "send: %v\n", err)
				}
			}
		},
	}
}
