package commands

import (
	"spot-scraper/pkg/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(coursesCmd)
}

var coursesCmd = &cobra.Command{
	Use:   "courses [--db <path/to/spot.db>]",
	Short: "Prints the stored courses.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		db := openStore(cmd.Context(), cfg)
		defer db.Close()

		courses, err := db.Courses(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to read courses", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Code", "Name", "Credits", "Lecturer", "Year", "Topics"})
		for _, c := range courses {
			topics := any(len(c.Topics))
			if c.NotConfigured {
				topics = "not configured"
			}
			t.AppendRow(table.Row{c.ID, c.Code, c.Name, c.Credits, c.Lecturer, c.AcademicYear, topics})
		}
		t.Render()
	},
}
