package commands

import (
	"fmt"

	"spot-scraper/internal/spot"
	"spot-scraper/internal/store"
	"spot-scraper/pkg/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tasksCourse *string

func init() {
	tasksCourse = tasksCmd.Flags().String("course", "", "Only show tasks of the course matching this id, code or name.")
	rootCmd.AddCommand(tasksCmd)
}

func formatScore(task spot.TaskRecord) string {
	if task.Answer == nil || !task.Answer.IsGraded {
		return "-"
	}
	return fmt.Sprintf("%g", task.Answer.Score)
}

func formatDue(ts spot.Timestamp) string {
	if ts.Time == nil {
		return ts.Raw
	}
	return ts.Time.Format("Mon 02 Jan 2006 15:04")
}

var tasksCmd = &cobra.Command{
	Use:   "tasks [--db <path/to/spot.db>] [--course <query>]",
	Short: "Prints the stored tasks, soonest due first.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		db := openStore(cmd.Context(), cfg)
		defer db.Close()

		tasks, err := db.Tasks(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to read tasks", err)
		}

		if *tasksCourse != "" {
			courses, err := db.Courses(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to read courses", err)
			}
			summaries := make([]spot.CourseSummary, len(courses))
			for i, c := range courses {
				summaries[i] = c.CourseSummary
			}
			match, ok := spot.FindCourse(summaries, *tasksCourse)
			if !ok {
				serviceutil.Fatal("no such course", fmt.Errorf("nothing matches %q", *tasksCourse))
			}

			var filtered []store.TaskEntry
			for _, entry := range tasks {
				if entry.CourseID == match.ID {
					filtered = append(filtered, entry)
				}
			}
			tasks = filtered
		}

		t := newTable()
		t.AppendHeader(table.Row{"Course", "Task", "Due", "Status", "Score"})
		for _, entry := range tasks {
			t.AppendRow(table.Row{
				entry.CourseCode,
				entry.Task.Title,
				formatDue(entry.Task.DueDate),
				entry.Task.Status,
				formatScore(entry.Task),
			})
		}
		t.Render()
	},
}
