package portal

import (
	"context"
	"fmt"
	"sync"

	"spot-scraper/internal/components/assert"
	"spot-scraper/internal/components/telemetry"
	"spot-scraper/internal/spot"
)

const (
	report_crawl_course = "crawl.course"
	report_crawl_topic  = "crawl.topic"
)

// Fetcher is the part of Client the crawler needs.
type Fetcher interface {
	Courses(ctx context.Context) ([]spot.CourseSummary, error)
	CourseDetail(ctx context.Context, course spot.CourseSummary) (spot.CourseDetail, error)
	TopicDetail(ctx context.Context, topic spot.TopicSummary) (spot.TopicDetail, error)
}

// Snapshot is everything a crawl could read. Topics is keyed by the listing id of the
// course they were reached from, which need not be numeric.
type Snapshot struct {
	Courses []spot.CourseDetail           `json:"courses"`
	Topics  map[string][]spot.TopicDetail `json:"topics"`
}

// Crawl reads every course and every accessible topic. Failures of a single course or
// topic are reported to sink and the item is left out, only a failure to list the
// courses fails the crawl.
func Crawl(ctx context.Context, fetcher Fetcher, sink telemetry.API) (Snapshot, error) {
	assert.NotNil("fetcher", fetcher)
	assert.NotNil("sink", sink)

	courses, err := fetcher.Courses(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list courses: %w", err)
	}

	c := crawl{
		fetcher: fetcher,
		tel:     sink,
		details: make([]*spot.CourseDetail, len(courses)),
		topics:  make([][]*spot.TopicDetail, len(courses)),
		wg:      &sync.WaitGroup{},
	}
	for i, course := range courses {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.scrapeCourse(ctx, i, course)
		}()
	}
	c.wg.Wait()

	return c.snapshot(), nil
}

// crawl writes every result to its own slot so nothing needs locking and listing order
// is kept.
type crawl struct {
	fetcher Fetcher
	tel     telemetry.API
	details []*spot.CourseDetail
	topics  [][]*spot.TopicDetail
	wg      *sync.WaitGroup
}

func (c crawl) scrapeCourse(ctx context.Context, index int, course spot.CourseSummary) {
	detail, err := c.fetcher.CourseDetail(ctx, course)
	if err != nil {
		c.tel.ReportBroken(report_crawl_course, err, course.ID)
		return
	}
	c.details[index] = &detail

	slots := make([]*spot.TopicDetail, len(detail.Topics))
	c.topics[index] = slots
	for j, topic := range detail.Topics {
		if !topic.IsAccessible {
			c.tel.ReportDebug("skipped inaccessible topic", course.ID, j)
			continue
		}
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			topicDetail, err := c.fetcher.TopicDetail(ctx, topic)
			if err != nil {
				c.tel.ReportBroken(report_crawl_topic, err, course.ID, j)
				return
			}
			slots[j] = &topicDetail
		}()
	}
}

func (c crawl) snapshot() Snapshot {
	snap := Snapshot{
		Courses: []spot.CourseDetail{},
		Topics:  map[string][]spot.TopicDetail{},
	}
	for i, detail := range c.details {
		if detail == nil {
			continue
		}
		snap.Courses = append(snap.Courses, *detail)

		var topics []spot.TopicDetail
		for _, topic := range c.topics[i] {
			if topic != nil {
				topics = append(topics, *topic)
			}
		}
		if len(topics) == 0 {
			continue
		}
		snap.Topics[detail.ID] = topics
	}
	c.tel.ReportCount("crawl.courses", int64(len(snap.Courses)))
	return snap
}
