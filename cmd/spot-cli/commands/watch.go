package commands

import (
	"log/slog"

	"spot-scraper/internal/components/chrono"
	"spot-scraper/internal/components/telemetry"
	"spot-scraper/pkg/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--db <path/to/output.db>]",
	Short: "Scrapes once and then again on the configured schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		defer setupTracing(ctx, cfg)()

		db := openStore(ctx, cfg)
		defer db.Close()

		scrape := func() {
			err := scrapeOnce(ctx, cfg, db, nil)
			if err != nil {
				slog.Error("scheduled scrape failed", "err", err)
			}
		}

		scheduler := chrono.NewScheduler(telemetry.SlogAPI{})
		defer scheduler.Stop()
		err := scheduler.Validate(cfg.Schedule)
		if err != nil {
			serviceutil.Fatal("invalid schedule", err)
		}

		// the cron only starts once this returns, so ticks never overlap it
		scrape()
		if ctx.Err() != nil {
			return
		}

		next, err := scheduler.Schedule(cfg.Schedule, scrape)
		if err != nil {
			serviceutil.Fatal("invalid schedule", err)
		}
		slog.Info("waiting for the next scheduled scrape", "schedule", cfg.Schedule, "next", next)
		<-ctx.Done()
	},
}
