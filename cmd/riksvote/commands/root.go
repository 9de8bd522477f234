package commands

import (
	"context"
	"fmt"
	"os"
	"riksvote/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	// cfg is loaded before any subcommand runs.
	cfg Config
	tel telemetry.API = telemetry.SlogAPI{}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "riksvote.json5", "The configuration file, a sibling <name>.local.json5 overrides it.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output and dump http exchanges to <dev_state>/resty.")
}

var rootCmd = &cobra.Command{
	Use:   "riksvote",
	Short: "riksvote enriches and explores the voting records of the Swedish riksdag.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)
		loaded, err := LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
		cfg = loaded
		return nil
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
