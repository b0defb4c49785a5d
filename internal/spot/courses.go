package spot

import (
	"fmt"
	"strings"

	"spot-scraper/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const minCourseCells = 5

// CourseList reads every course row of the course listing page in document order. Rows
// that are not shaped like a course are skipped, a page with no course rows at all
// (a login redirect, an empty semester) is a ParsingError.
func (p Parser) CourseList(markup string) ([]CourseSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, parsingError("course list: %s", err.Error())
	}

	var courses []CourseSummary
	doc.Find("table > tbody > tr").Each(func(i int, row *goquery.Selection) {
		course, err := courseFromRow(row)
		if err != nil {
			p.tel.ReportWarning(report_parser_course_list, fmt.Errorf("row %d: %w", i, err))
			return
		}
		courses = append(courses, course)
	})

	if len(courses) == 0 {
		return nil, parsingError("no course rows found in the course table")
	}
	p.tel.ReportDebug("course list", len(courses))
	return courses, nil
}

func courseFromRow(row *goquery.Selection) (CourseSummary, error) {
	cells := row.Find("td").Length()
	if cells < minCourseCells {
		return CourseSummary{}, parsingError("expected at least %d cells, got %d", minCourseCells, cells)
	}

	href, ok := htmlutil.CellHref(row, 1)
	if !ok {
		return CourseSummary{}, elementNotFound("course link")
	}

	// listing cells hold plain values, unlike the label rows CellText is meant for
	text := func(i int) string {
		return strings.TrimSpace(row.Find("td").Eq(i).Text())
	}

	course := CourseSummary{
		ID:           TrailingSegment(href),
		Code:         text(0),
		Name:         text(1),
		Credits:      ParseCredits(text(2)),
		Lecturer:     text(3),
		AcademicYear: text(4),
		Href:         href,
	}
	if id, ok := parseID(course.ID); ok {
		course.NumericID = &id
	}
	return course, nil
}
