package spot

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testCourse = CourseSummary{
	ID:        "1201",
	NumericID: ptr[int64](1201),
	Code:      "IF101",
	Name:      "Algoritma dan Pemrograman",
	Href:      "https://spot.unri.ac.id/mhs/matakuliah/1201",
}

func TestCourseDetail(t *testing.T) {
	parser, _ := newTestParser(t)

	detail, err := parser.CourseDetail(courseDetailPage, testCourse)
	require.NoError(t, err)

	expected := CourseDetail{
		CourseSummary: testCourse,
		Description:   "Mata kuliah ini membahas algoritma dasar dan pemrograman terstruktur.",
		Syllabus: SyllabusRef{
			ID:   ptr[int64](4821),
			Href: ptr("https://spot.unri.ac.id/mhs/rps/4821"),
		},
		Topics: []TopicSummary{
			{
				ID:           ptr[int64](456),
				CourseID:     ptr[int64](1201),
				AccessTime:   stamp("01-03-2024 10:00", naive(2024, time.March, 1, 10, 0, 0)),
				IsAccessible: true,
				Href:         ptr("/mhs/topik/1201/456"),
			},
			{
				ID:           ptr[int64](457),
				CourseID:     ptr[int64](1201),
				AccessTime:   stamp("08/03/2024 10:00:00", naive(2024, time.March, 8, 10, 0, 0)),
				IsAccessible: true,
				Href:         ptr("/mhs/topik/1201/457"),
			},
			{
				AccessTime: stamp("15-03-2024 10:00", naive(2024, time.March, 15, 10, 0, 0)),
			},
		},
	}
	if diff := cmp.Diff(expected, detail); diff != "" {
		t.Fatal(diff)
	}
}

func TestCourseDetailNotConfigured(t *testing.T) {
	parser, _ := newTestParser(t)
	course := CourseSummary{ID: "1203", Code: "IF103", Name: "Basis Data"}

	first, err := parser.CourseDetail(courseNotConfiguredPage, course)
	require.NoError(t, err)

	expected := CourseDetail{
		CourseSummary: course,
		NotConfigured: true,
		Topics:        []TopicSummary{},
	}
	if diff := cmp.Diff(expected, first); diff != "" {
		t.Fatal(diff)
	}

	second, err := parser.CourseDetail(courseNotConfiguredPage, course)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatal(diff)
	}
}

func TestCourseDetailWithoutSyllabus(t *testing.T) {
	parser, _ := newTestParser(t)

	markup := `<html><body><div class="container-fluid">
		<div class="col-md-4 block4"><div class="panel-body">
			<a class="btn btn-info" href="/mhs/topik/1201/9">Masuk</a>
		</div></div>
	</div></body></html>`

	detail, err := parser.CourseDetail(markup, testCourse)
	require.NoError(t, err)
	require.Equal(t, SyllabusRef{}, detail.Syllabus)
	require.Empty(t, detail.Description)
	require.Len(t, detail.Topics, 1)
	require.True(t, detail.Topics[0].IsAccessible)
	require.True(t, detail.Topics[0].AccessTime.IsZero())
	require.Equal(t, int64(9), *detail.Topics[0].ID)
}

func TestCourseDetailTopicLinkWithoutIDs(t *testing.T) {
	parser, rec := newTestParser(t)

	markup := `<html><body><div class="container-fluid">
		<div class="col-md-4 block4"><div class="panel-body">
			<a class="btn btn-info" href="/mhs/topik/1201/9/">Masuk</a>
		</div></div>
		<div class="col-md-4 block4"><div class="panel-body">
			<a class="btn btn-info" href="/mhs/topik/1201/10">Masuk</a>
		</div></div>
	</div></body></html>`

	detail, err := parser.CourseDetail(markup, testCourse)
	require.NoError(t, err)
	require.Len(t, detail.Topics, 2)

	require.True(t, detail.Topics[0].IsAccessible)
	require.Nil(t, detail.Topics[0].ID)
	require.Equal(t, "/mhs/topik/1201/9/", *detail.Topics[0].Href)
	require.Equal(t, int64(10), *detail.Topics[1].ID)

	require.Len(t, rec.Reports("warning", report_parser_course_detail), 1)
}

func TestCourseDetailEmptyPage(t *testing.T) {
	parser, _ := newTestParser(t)

	_, err := parser.CourseDetail("<html><body></body></html>", testCourse)
	require.ErrorIs(t, err, ErrElementNotFound)
}
