package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spot-scraper/internal/components/telemetry"
	"spot-scraper/internal/scrapers/portal"
	"spot-scraper/internal/store"
	"spot-scraper/pkg/serviceutil"

	"github.com/spf13/cobra"
)

var scrapeDump *string

func init() {
	scrapeDump = scrapeCmd.Flags().String("dump", "", "A directory to also save every fetched page to, for use with `parse`.")
	rootCmd.AddCommand(scrapeCmd)
}

func setupTracing(ctx context.Context, cfg Config) func() {
	shutdown, err := telemetry.SetupTracing(ctx, "spot-cli", cfg.Tracing)
	if err != nil {
		serviceutil.Fatal("failed to setup tracing", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush traces", "err", err)
		}
	}
}

// scrapeOnce logs in with a fresh session, crawls everything and saves the result.
func scrapeOnce(ctx context.Context, cfg Config, db store.Store, pages portal.PageSink) error {
	if cfg.Nim == "" || cfg.Password == "" {
		return fmt.Errorf("a nim and password are required, set them in the config or SPOT_NIM and SPOT_PASSWORD")
	}

	tel := telemetry.SlogAPI{}
	client, err := portal.NewClient(portal.ClientOptions{
		BaseUrl:           cfg.BaseUrl,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Pages:             pages,
	}, tel)
	if err != nil {
		return err
	}

	loginCtx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()
	err = client.Login(loginCtx, cfg.Nim, cfg.Password)
	if err != nil {
		return err
	}

	t1 := time.Now()
	snap, err := portal.Crawl(ctx, client, tel)
	if err != nil {
		return err
	}
	slog.Info("crawled portal", "courses", len(snap.Courses), "seconds", time.Since(t1).Seconds())

	return db.SaveSnapshot(ctx, snap, time.Now())
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--db <path/to/output.db>] [--dump <dir>]",
	Short: "Logs in, reads every course and accessible topic and saves them to the database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		defer setupTracing(cmd.Context(), cfg)()

		db := openStore(cmd.Context(), cfg)
		defer db.Close()

		var pages portal.PageSink
		if *scrapeDump != "" {
			sink, err := portal.NewDirSink(*scrapeDump, telemetry.SlogAPI{})
			if err != nil {
				serviceutil.Fatal("failed to create dump directory", err)
			}
			pages = sink
		}

		err := scrapeOnce(cmd.Context(), cfg, db, pages)
		if err != nil {
			serviceutil.Fatal("failed to scrape", err)
		}
	},
}
