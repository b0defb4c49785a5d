package spot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"spot-scraper/pkg/htmlutil"
)

// CourseSummary is a single row of the course listing page.
type CourseSummary struct {
	// ID is the trailing segment of Href, kept as is.
	ID string `json:"id"`
	// NumericID is ID parsed as a number, nil when ID is not numeric.
	NumericID    *int64 `json:"numeric_id,omitempty"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Credits      int    `json:"credits"`
	Lecturer     string `json:"lecturer"`
	AcademicYear string `json:"academic_year"`
	Href         string `json:"href"`
}

// SyllabusRef points to the course's semester plan (RPS), both fields are nil when the
// course page has no syllabus link.
type SyllabusRef struct {
	ID   *int64  `json:"id"`
	Href *string `json:"href"`
}

type TopicSummary struct {
	ID       *int64 `json:"id"`
	CourseID *int64 `json:"course_id"`
	// AccessTime is when the topic opens to students.
	AccessTime   Timestamp `json:"access_time"`
	IsAccessible bool      `json:"is_accessible"`
	// Href is always a path, absolute portal urls are reduced to their path.
	Href *string `json:"href"`
}

type CourseDetail struct {
	CourseSummary
	// Description is empty when the lecturer has not set the course up yet.
	Description string `json:"description"`
	// NotConfigured is true when the portal shows its "not configured" warning instead
	// of the course contents.
	NotConfigured bool           `json:"not_configured"`
	Syllabus      SyllabusRef    `json:"rps"`
	Topics        []TopicSummary `json:"topics"`
}

type ContentItem struct {
	// ID is the position of the item on the topic page.
	ID        int     `json:"id"`
	YoutubeID *string `json:"youtube_id"`
	// RawHTML is the inner markup of the content block, untouched.
	RawHTML string            `json:"raw_html"`
	Links   []htmlutil.Anchor `json:"links"`
}

type TaskStatus int

const (
	TaskNotSubmitted TaskStatus = iota
	TaskSubmitted
	TaskGraded
	// TaskPending is a task that has not opened yet. The extractor never produces it,
	// no known page layout distinguishes it.
	TaskPending
)

var taskStatusNames = map[TaskStatus]string{
	TaskPending:      "Pending",
	TaskNotSubmitted: "NotSubmitted",
	TaskSubmitted:    "Submitted",
	TaskGraded:       "Graded",
}

func (s TaskStatus) String() string {
	name, ok := taskStatusNames[s]
	if !ok {
		return fmt.Sprintf("TaskStatus(%d)", int(s))
	}
	return name
}

func (s TaskStatus) MarshalText() ([]byte, error) {
	name, ok := taskStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown task status %d", int(s))
	}
	return []byte(name), nil
}

func (s *TaskStatus) UnmarshalText(text []byte) error {
	for status, name := range taskStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown task status %q", string(text))
}

type AnswerRecord struct {
	// ID comes from the answer's delete link, nil when there is none.
	ID            *int64    `json:"id"`
	Content       string    `json:"content"`
	FileHref      *string   `json:"file_href"`
	IsGraded      bool      `json:"is_graded"`
	LecturerNotes string    `json:"lecturer_notes"`
	Score         float64   `json:"score"`
	DateSubmitted Timestamp `json:"date_submitted"`
}

type TaskRecord struct {
	// ID and Token come from the task's submission form, empty when the form is missing.
	ID          string        `json:"id"`
	Token       string        `json:"token"`
	CourseID    int64         `json:"course_id"`
	TopicID     int64         `json:"topic_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	File        *string       `json:"file"`
	StartDate   Timestamp     `json:"start_date"`
	DueDate     Timestamp     `json:"due_date"`
	Status      TaskStatus    `json:"status"`
	Answer      *AnswerRecord `json:"answer"`
}

type TopicDetail struct {
	ID           int64         `json:"id"`
	CourseID     int64         `json:"course_id"`
	AccessTime   Timestamp     `json:"access_time"`
	IsAccessible bool          `json:"is_accessible"`
	Href         string        `json:"href"`
	Description  *string       `json:"description"`
	Contents     []ContentItem `json:"contents"`
	Tasks        []TaskRecord  `json:"tasks"`
}

// Timestamp is a date-time as displayed by the portal. Raw is the displayed text and
// Time is its parsed value, nil when the text matched none of the known layouts.
// Parsed values have no timezone, they are naive wall clock readings stored in UTC.
//
// The zero value means the portal displayed nothing.
type Timestamp struct {
	Raw  string
	Time *time.Time
}

func (t Timestamp) IsZero() bool {
	return t.Raw == "" && t.Time == nil
}

const naiveLayout = "2006-01-02T15:04:05"

type timestampJSON struct {
	Raw  string  `json:"raw"`
	Time *string `json:"time"`
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	out := timestampJSON{Raw: t.Raw}
	if t.Time != nil {
		formatted := t.Time.Format(naiveLayout)
		out.Time = &formatted
	}
	return json.Marshal(out)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var in timestampJSON
	err := json.Unmarshal(data, &in)
	if err != nil {
		return err
	}
	*t = Timestamp{Raw: in.Raw}
	if in.Time != nil {
		parsed, err := time.Parse(naiveLayout, *in.Time)
		if err != nil {
			return err
		}
		t.Time = &parsed
	}
	return nil
}
