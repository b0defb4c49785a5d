package spot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindCourse(t *testing.T) {
	courses := []CourseSummary{
		{ID: "1201", Code: "IF101", Name: "Algoritma dan Pemrograman"},
		{ID: "1203", Code: "IF103", Name: "Basis Data"},
		{ID: "1205", Code: "IF205", Name: "Jaringan Komputer"},
	}

	testCases := []struct {
		query    string
		expected string
		ok       bool
	}{
		{query: "1203", expected: "1203", ok: true},
		{query: "if205", expected: "1205", ok: true},
		{query: "  Basis   data ", expected: "1203", ok: true},
		{query: "algoritma dan pemrogaman", expected: "1201", ok: true},
		{query: "jaringan komputr", expected: "1205", ok: true},
		{query: "kalkulus", ok: false},
		{query: "", ok: false},
	}

	for _, test := range testCases {
		course, ok := FindCourse(courses, test.query)
		require.Equal(t, test.ok, ok, test.query)
		require.Equal(t, test.expected, course.ID, test.query)
	}
}
