package spot

import (
	"strings"

	"spot-scraper/internal/components/assert"
	"spot-scraper/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_parser_course_list   = "parser.course-list"
	report_parser_course_detail = "parser.course-detail"
	report_parser_topic_detail  = "parser.topic-detail"
)

// Parser turns portal pages into records. It holds no state besides telemetry so a
// single Parser may be shared between goroutines.
type Parser struct {
	tel telemetry.API
}

func NewParser(tel telemetry.API) Parser {
	assert.NotNil("telemetry", tel)
	return Parser{tel: telemetry.NewScopedAPI("spot", tel)}
}

// document parses markup, pages without a single element in their body are rejected
// since nothing can be extracted from them.
func (p Parser) document(markup, page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, parsingError("%s: %s", page, err.Error())
	}
	if doc.Find("body").Children().Length() == 0 {
		return nil, elementNotFound("%s: page has no body content", page)
	}
	return doc, nil
}
