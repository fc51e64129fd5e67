package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chuilabs/chui/internal/cli"
	"github.com/chuilabs/chui/internal/config"
	"github.com/chuilabs/chui/internal/logging"
)

var (
	configFlag  string
	addrFlag    string
	dataDirFlag string
	timeoutFlag int
)

// rootCmd starts the interactive shell when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "chui",
	Short: "Terminal chat client",
	Long: `chui is a terminal chat client.

Running it without a subcommand starts the interactive shell, where you can
sign up, sign in and chat. Identity lives on the hosted service when it is
reachable; otherwise usernames resolve through a local flat-file registry.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log := newLogger()
		app, err := cli.NewApp(cfg, log)
		if err != nil {
			return err
		}

		app.Run(context.Background())
		return nil
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", "", "path to JSON config file")
	pf.StringVarP(&addrFlag, "addr", "a", "", "identity service endpoint URL")
	pf.StringVarP(&dataDirFlag, "data-dir", "d", "", "data directory (default ~/.chui)")
	pf.IntVarP(&timeoutFlag, "timeout", "t", 0, "request timeout in seconds")
}

// loadConfig layers defaults, the optional JSON file and any flags the user
// set explicitly, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("addr") {
		cfg.ServerEndpointURL = addrFlag
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDirFlag
	}
	if cmd.Flags().Changed("timeout") {
		cfg.RequestTimeout = time.Duration(timeoutFlag) * time.Second
	}
	return cfg, nil
}

// newLogger keeps structured output on stderr so log lines do not interleave
// with the interactive prompt on stdout.
func newLogger() logging.Logger {
	return logging.NewTextLogger(os.Stderr, slog.LevelWarn)
}
