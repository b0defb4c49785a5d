package spot

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	notConfiguredSelector = ".white-box.bg-warning"
	syllabusLinkSelector  = "a.btn-danger[href*='/mhs/rps/']"
	topicBlockSelector    = ".container-fluid .block4"
	topicLinkSelector     = ".panel-body a.btn-info"
	topicTimeSelector     = ".panel-body div div button.disabled"

	accessTimeLabel = "Waktu Akses:"
	// index of the course id in topic paths, /mhs/topik/{course}/{topic}
	topicCourseSegment = 3
)

// CourseDetail reads a course page. The course summary is supplied by the caller since
// the detail page does not repeat it reliably.
//
// A course the lecturer has not configured yet is not an error, it yields an empty
// description, no syllabus and no topics.
func (p Parser) CourseDetail(markup string, course CourseSummary) (CourseDetail, error) {
	doc, err := p.document(markup, "course detail")
	if err != nil {
		return CourseDetail{}, err
	}

	detail := CourseDetail{
		CourseSummary: course,
		Topics:        []TopicSummary{},
	}

	if doc.Find(notConfiguredSelector).Length() > 0 {
		p.tel.ReportDebug("course not configured", course.ID)
		detail.NotConfigured = true
		return detail, nil
	}

	detail.Syllabus, detail.Description = readSyllabus(doc)

	doc.Find(topicBlockSelector).Each(func(i int, block *goquery.Selection) {
		topic := readTopicSummary(block)
		if topic.IsAccessible && (topic.ID == nil || topic.CourseID == nil) {
			// kept as is, only the topic's own page cannot be fetched
			p.tel.ReportWarning(report_parser_course_detail, fmt.Errorf("topic %d of course %s: link without ids", i, course.ID))
		}
		detail.Topics = append(detail.Topics, topic)
	})
	if len(detail.Topics) == 0 {
		p.tel.ReportDebug("course has no topics", course.ID)
	}

	return detail, nil
}

// readSyllabus finds the syllabus link and the course description next to it. The
// description is the first paragraph of the link's panel that does not hold the link
// itself (that paragraph is only a caption).
func readSyllabus(doc *goquery.Document) (SyllabusRef, string) {
	anchor := doc.Find(syllabusLinkSelector).First()
	if anchor.Length() == 0 {
		return SyllabusRef{}, ""
	}

	var ref SyllabusRef
	if href, ok := anchor.Attr("href"); ok {
		ref.Href = &href
		if id, ok := IDFromPath(href); ok {
			ref.ID = &id
		}
	}

	description := ""
	panel := anchor.Parent().Closest(".white-box")
	panel.Find("p").EachWithBreak(func(_ int, paragraph *goquery.Selection) bool {
		if paragraph.Find(syllabusLinkSelector).Length() > 0 {
			return true
		}
		description = strings.TrimSpace(paragraph.Text())
		return false
	})

	return ref, description
}

func readTopicSummary(block *goquery.Selection) TopicSummary {
	link := block.Find(topicLinkSelector).First()
	topic := TopicSummary{
		IsAccessible: DeriveAccessibility(link.Length() > 0),
	}

	if topic.IsAccessible {
		raw, _ := link.Attr("href")
		if path, ok := NormalizeHref(raw); ok && path != "" {
			topic.Href = &path
			if id, ok := IDFromPath(path); ok {
				topic.ID = &id
			}
			if courseID, ok := parseID(SegmentFromPath(path, topicCourseSegment)); ok {
				topic.CourseID = &courseID
			}
		}
	}

	button := block.Find(topicTimeSelector).First()
	if button.Length() > 0 {
		topic.AccessTime = ParseTimestamp(strings.ReplaceAll(button.Text(), accessTimeLabel, ""))
	}

	return topic
}
