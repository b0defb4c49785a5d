package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"spot-scraper/internal/components/telemetry"
	"spot-scraper/internal/spot"
	"spot-scraper/pkg/serviceutil"

	"github.com/spf13/cobra"
)

var (
	parseCourseID    *string
	parseTopicCourse *int64
	parseTopicID     *int64
)

func init() {
	parseCourseID = parseCourseCmd.Flags().String("id", "", "The id of the course the page belongs to.")
	parseCourseCmd.MarkFlagRequired("id")

	parseTopicCourse = parseTopicCmd.Flags().Int64("course", 0, "The numeric id of the course the topic belongs to.")
	parseTopicID = parseTopicCmd.Flags().Int64("topic", 0, "The numeric id of the topic.")
	parseTopicCmd.MarkFlagRequired("course")
	parseTopicCmd.MarkFlagRequired("topic")

	parseCmd.AddCommand(parseCoursesCmd, parseCourseCmd, parseTopicCmd)
	rootCmd.AddCommand(parseCmd)
}

func readPage(path string) string {
	markup, err := os.ReadFile(path)
	if err != nil {
		serviceutil.Fatal("failed to read page", err)
	}
	return string(markup)
}

func printJSON(value any) {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		serviceutil.Fatal("failed to serialize result", err)
	}
	fmt.Println(string(out))
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extracts records from saved portal pages and prints them as JSON.",
}

var parseCoursesCmd = &cobra.Command{
	Use:   "courses <page.html>",
	Short: "Reads a saved course listing page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := spot.NewParser(telemetry.SlogAPI{})
		courses, err := parser.CourseList(readPage(args[0]))
		if err != nil {
			serviceutil.Fatal("failed to read course list", err)
		}
		printJSON(courses)
	},
}

var parseCourseCmd = &cobra.Command{
	Use:   "course --id <course id> <page.html>",
	Short: "Reads a saved course detail page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		course := spot.CourseSummary{ID: *parseCourseID}
		if id, err := strconv.ParseInt(*parseCourseID, 10, 64); err == nil {
			course.NumericID = &id
		}

		parser := spot.NewParser(telemetry.SlogAPI{})
		detail, err := parser.CourseDetail(readPage(args[0]), course)
		if err != nil {
			serviceutil.Fatal("failed to read course detail", err)
		}
		printJSON(detail)
	},
}

var parseTopicCmd = &cobra.Command{
	Use:   "topic --course <course id> --topic <topic id> <page.html>",
	Short: "Reads a saved topic page.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := spot.NewParser(telemetry.SlogAPI{})
		detail, err := parser.TopicDetail(readPage(args[0]), *parseTopicCourse, *parseTopicID)
		if err != nil {
			serviceutil.Fatal("failed to read topic detail", err)
		}
		printJSON(detail)
	},
}
