package spot

import (
	"testing"
	"time"

	"spot-scraper/internal/components/telemetry"

	_ "embed"
)

//go:embed testdata/courses.html
var coursesPage string

//go:embed testdata/login.html
var loginPage string

//go:embed testdata/course_detail.html
var courseDetailPage string

//go:embed testdata/course_not_configured.html
var courseNotConfiguredPage string

//go:embed testdata/topic_detail.html
var topicDetailPage string

func newTestParser(t testing.TB) (Parser, *telemetry.Recorder) {
	t.Helper()
	rec := &telemetry.Recorder{}
	return NewParser(rec), rec
}

func ptr[T any](v T) *T {
	return &v
}

func naive(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func stamp(raw string, t time.Time) Timestamp {
	return Timestamp{Raw: raw, Time: &t}
}
