package commands

import (
	"fmt"
	"log/slog"
	"os"

	"spot-scraper/internal/calendar"
	"spot-scraper/internal/components/chrono"
	"spot-scraper/pkg/serviceutil"

	"github.com/spf13/cobra"
)

var calendarOut *string

func init() {
	calendarOut = calendarCmd.Flags().String("out", "spot.ics", "Where to write the calendar, - for stdout.")
	rootCmd.AddCommand(calendarCmd)
}

var calendarCmd = &cobra.Command{
	Use:   "calendar [--db <path/to/spot.db>] [--out <path/to/spot.ics>]",
	Short: "Writes the due dates of stored tasks as an iCalendar file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		db := openStore(cmd.Context(), cfg)
		defer db.Close()

		tasks, err := db.Tasks(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to read tasks", err)
		}

		cal := calendar.TasksCalendar(tasks, chrono.NewStandardTime())

		if *calendarOut == "-" {
			fmt.Print(cal.Serialize())
			return
		}
		f, err := os.Create(*calendarOut)
		if err != nil {
			serviceutil.Fatal("failed to create calendar file", err)
		}
		defer f.Close()
		_, err = f.WriteString(cal.Serialize())
		if err != nil {
			serviceutil.Fatal("failed to write calendar", err)
		}
		slog.Info("wrote calendar", "path", *calendarOut, "events", len(cal.Events()))
	},
}
