package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealbox/internal/app"
)

var (
	home       string
	serverURL  string
	passphrase string
	appCtx     *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "sealbox",
		Short: "End-to-end encrypted mailbox CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".sealbox")
			}
			if serverURL == "" {
				serverURL = os.Getenv("SERVER_URL")
			}
			if serverURL == "" {
				return fmt.Errorf("no relay configured, use --server or SERVER_URL")
			}

			wire, err := app.NewWire(app.Config{Home: home, ServerURL: serverURL})
			if err != nil {
				return err
			}
			appCtx = wire
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.sealbox)")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "relay base URL (e.g. http://127.0.0.1:3008)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the private key")

	root.AddCommand(signupCmd(), loginCmd(), sendCmd(), pullCmd(), historyCmd(), chatCmd())
	return root.Execute()
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
