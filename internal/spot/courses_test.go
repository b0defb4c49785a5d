package spot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCourseList(t *testing.T) {
	parser, rec := newTestParser(t)

	courses, err := parser.CourseList(coursesPage)
	require.NoError(t, err)

	expected := []CourseSummary{
		{
			ID:           "1201",
			NumericID:    ptr[int64](1201),
			Code:         "IF101",
			Name:         "Algoritma dan Pemrograman",
			Credits:      3,
			Lecturer:     "Dr. Budi Santoso",
			AcademicYear: "2023/2024 Genap",
			Href:         "https://spot.unri.ac.id/mhs/matakuliah/1201",
		},
		{
			ID:           "1203",
			NumericID:    ptr[int64](1203),
			Code:         "IF103",
			Name:         "Basis Data",
			Credits:      0,
			Lecturer:     "Andi Wijaya, M.Kom",
			AcademicYear: "2023/2024 Genap",
			Href:         "/mhs/matakuliah/1203",
		},
	}
	if diff := cmp.Diff(expected, courses); diff != "" {
		t.Fatal(diff)
	}

	require.Len(t, rec.Reports("warning", report_parser_course_list), 2)
}

func TestCourseListWithoutRows(t *testing.T) {
	parser, _ := newTestParser(t)

	testCases := []string{
		loginPage,
		"<html><body><table><tbody></tbody></table></body></html>",
		"",
	}
	for _, markup := range testCases {
		_, err := parser.CourseList(markup)
		require.ErrorIs(t, err, ErrParsing)
		require.NotErrorIs(t, err, ErrElementNotFound)
	}
}

func TestCourseListNonNumericID(t *testing.T) {
	parser, _ := newTestParser(t)

	markup := `<table><tbody><tr>
		<td>IF200</td>
		<td><a href="/mhs/matakuliah/abc">Etika Profesi</a></td>
		<td>2</td>
		<td>Siti</td>
		<td>2023/2024 Ganjil</td>
	</tr></tbody></table>`

	courses, err := parser.CourseList(markup)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "abc", courses[0].ID)
	require.Nil(t, courses[0].NumericID)
	require.Equal(t, 2, courses[0].Credits)
}
