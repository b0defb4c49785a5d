// Package calendar exports stored tasks as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"

	"spot-scraper/internal/components/chrono"
	"spot-scraper/internal/store"

	ics "github.com/arran4/golang-ical"
)

const productID = "-//spot-scraper//tasks//ID"

func eventUID(task store.TaskEntry) string {
	if task.Task.ID != "" {
		return fmt.Sprintf("spot-task-%s", task.Task.ID)
	}
	// tasks without a submission form have no id, their position is stable enough
	return fmt.Sprintf("spot-task-%d-%d-%s", task.Task.CourseID, task.Task.TopicID, strings.ToLower(strings.Join(strings.Fields(task.Task.Title), "-")))
}

func summary(task store.TaskEntry) string {
	course := task.CourseCode
	if course == "" {
		course = task.CourseName
	}
	return fmt.Sprintf("[%s] %s", course, task.Task.Title)
}

// TasksCalendar creates one event per task that has a due date, spanning from the task's
// start (or its due date when it has none) to its due date. Portal times are naive and
// are read as wall clock times in the portal's timezone.
func TasksCalendar(tasks []store.TaskEntry, clock chrono.TimeAPI) *ics.Calendar {
	now := clock.Now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("SPOT")
	cal.SetXWRTimezone(chrono.Portal().String())

	for _, entry := range tasks {
		if entry.Task.DueDate.Time == nil {
			continue
		}
		due := chrono.InPortal(*entry.Task.DueDate.Time)
		start := due
		if entry.Task.StartDate.Time != nil {
			start = chrono.InPortal(*entry.Task.StartDate.Time)
		}
		if start.After(due) {
			start = due
		}

		event := cal.AddEvent(eventUID(entry))
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(due)
		event.SetSummary(summary(entry))

		description := entry.Task.Description
		if description != "" {
			description += "\n\n"
		}
		description += fmt.Sprintf("%s: %s", entry.CourseName, entry.Task.Status)
		event.SetDescription(description)
	}

	return cal
}
