package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chuilabs/chui/internal/cli"
	"github.com/chuilabs/chui/internal/filex"
	"github.com/chuilabs/chui/internal/registry"
)

// resolveCmd is the one-shot registry path: map a username to its stable
// numeric id without touching the identity service, allocating an id if the
// name has never been seen.
var resolveCmd = &cobra.Command{
	Use:   "resolve <username>",
	Short: "Resolve a username through the local registry",
	Args:  cobra.ExactArgs(1),
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
		if err := filex.EnsureDir(dir); err != nil {
			return err
		}

		reg := registry.New(filepath.Join(dir, cli.LedgerFileName), newLogger())
		rec, err := reg.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%d\t%s\n", rec.UserID, rec.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
