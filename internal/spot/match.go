package spot

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const courseMatchThreshold = 0.8

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// FindCourse resolves a user supplied query (a course id, code or an approximate name) to
// one of courses. Exact id and code matches win, otherwise the most similar name is used
// if it is similar enough.
func FindCourse(courses []CourseSummary, query string) (CourseSummary, bool) {
	query = normalizeName(query)
	if query == "" {
		return CourseSummary{}, false
	}

	for _, c := range courses {
		if c.ID == query || normalizeName(c.Code) == query {
			return c, true
		}
	}

	var best CourseSummary
	bestScore := 0.0
	for _, c := range courses {
		score := matchr.JaroWinkler(query, normalizeName(c.Name), false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore < courseMatchThreshold {
		return CourseSummary{}, false
	}
	return best, true
}
