package portal

import (
	"context"
	"errors"
	"testing"

	"spot-scraper/internal/components/telemetry"
	"spot-scraper/internal/spot"

	"github.com/stretchr/testify/require"
)

func TestCrawl(t *testing.T) {
	server := newPortal(t)
	ctx := context.Background()

	client, _ := newTestClient(t, server)
	require.NoError(t, client.Login(ctx, testNim, testPassword))

	rec := &telemetry.Recorder{}
	snap, err := Crawl(ctx, client, rec)
	require.NoError(t, err)

	require.Len(t, snap.Courses, 2)
	require.Equal(t, "1201", snap.Courses[0].ID)
	require.Equal(t, "1203", snap.Courses[1].ID)

	// topic 457 fails on the server and the third topic is not accessible
	require.Len(t, snap.Topics, 1)
	require.Len(t, snap.Topics["1201"], 1)
	require.Equal(t, int64(456), snap.Topics["1201"][0].ID)

	require.Len(t, rec.Reports("broken", report_crawl_topic), 1)
	require.Empty(t, rec.Reports("broken", report_crawl_course))
}

func ptr[T any](v T) *T {
	return &v
}

type fakeFetcher struct {
	courses []spot.CourseSummary
	err     error
	failing map[string]bool
	topics  int
}

func (f fakeFetcher) Courses(context.Context) ([]spot.CourseSummary, error) {
	return f.courses, f.err
}

func (f fakeFetcher) CourseDetail(_ context.Context, course spot.CourseSummary) (spot.CourseDetail, error) {
	if f.failing[course.ID] {
		return spot.CourseDetail{}, errors.New("boom")
	}
	detail := spot.CourseDetail{CourseSummary: course}
	for i := 0; i < f.topics; i++ {
		id := int64(i)
		detail.Topics = append(detail.Topics, spot.TopicSummary{
			ID:           &id,
			CourseID:     course.NumericID,
			IsAccessible: true,
		})
	}
	return detail, nil
}

func (f fakeFetcher) TopicDetail(_ context.Context, topic spot.TopicSummary) (spot.TopicDetail, error) {
	detail := spot.TopicDetail{ID: *topic.ID}
	if topic.CourseID != nil {
		detail.CourseID = *topic.CourseID
	}
	return detail, nil
}

func TestCrawlKeepsOrder(t *testing.T) {
	var courses []spot.CourseSummary
	for i := int64(1); i <= 20; i++ {
		id := i
		courses = append(courses, spot.CourseSummary{ID: string(rune('a' + i)), NumericID: &id})
	}
	fetcher := fakeFetcher{
		courses: courses,
		failing: map[string]bool{courses[3].ID: true},
		topics:  15,
	}

	rec := &telemetry.Recorder{}
	snap, err := Crawl(context.Background(), fetcher, rec)
	require.NoError(t, err)
	require.Len(t, snap.Courses, 19)
	require.Len(t, rec.Reports("broken", report_crawl_course), 1)

	for i, course := range snap.Courses {
		if i < 3 {
			require.Equal(t, courses[i].ID, course.ID)
		} else {
			require.Equal(t, courses[i+1].ID, course.ID)
		}
		topics := snap.Topics[course.ID]
		require.Len(t, topics, 15)
		for j, topic := range topics {
			require.Equal(t, int64(j), topic.ID)
		}
	}
}

func TestCrawlListingFailure(t *testing.T) {
	_, err := Crawl(context.Background(), fakeFetcher{err: spot.ErrParsing}, &telemetry.Recorder{})
	require.ErrorIs(t, err, spot.ErrParsing)
}

func TestCrawlOpaqueCourseIDs(t *testing.T) {
	// listing ids that are not numbers, or that differ from the id in the topic links
	fetcher := fakeFetcher{
		courses: []spot.CourseSummary{
			{ID: "IF101-A"},
			{ID: "77", NumericID: ptr[int64](1201)},
		},
		topics: 2,
	}

	snap, err := Crawl(context.Background(), fetcher, &telemetry.Recorder{})
	require.NoError(t, err)
	require.Len(t, snap.Courses, 2)
	require.Len(t, snap.Topics, 2)
	require.Len(t, snap.Topics["IF101-A"], 2)
	require.Len(t, snap.Topics["77"], 2)
	require.Equal(t, int64(1201), snap.Topics["77"][0].CourseID)
}
