package commands

import (
	"context"
	"fmt"
	"os"

	"spot-scraper/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	dbPath     *string
	debug      *bool
)

var rootCmd = &cobra.Command{
	Use:   "spot-cli",
	Short: "spot-cli reads courses, topics and tasks from the SPOT student portal.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*debug)
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file, a sibling <name>.local.json5 overrides it.")
	dbPath = rootCmd.PersistentFlags().String("db", "", "The database to read from and write to, overrides the config.")
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Log debug output.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
