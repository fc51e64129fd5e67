package main

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chuilabs/chui/internal/cli"
	"github.com/chuilabs/chui/internal/filex"
	"github.com/chuilabs/chui/internal/remote"
	"github.com/chuilabs/chui/internal/session"
)

// whoamiCmd reports the identity behind the persisted session. The token is
// opaque, so the identity service is asked who it belongs to; if it cannot
// answer, all we can say is that a token is stored.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dir := cfg.DataDir
		if dir == "" {
			if dir, err = filex.DefaultAppDir(); err != nil {
				return err
			}
		}

		store := session.New(filepath.Join(dir, cli.SessionFileName), newLogger())
		token := store.Get()
		if token == "" {
			fmt.Println("Not signed in.")
			return nil
		}

		client := remote.NewHTTPClient(cfg.ServerEndpointURL, &http.Client{Timeout: cfg.RequestTimeout})
		cur, err := client.GetCurrentUser(cmd.Context(), token)
		if err != nil {
			fmt.Println("Signed in (session token stored).")
			return nil
		}
		fmt.Println(cur.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
