// client.go holds the session with the portal, it only fetches pages and leaves all
// reading of them to the spot package.

package portal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"spot-scraper/internal/components/assert"
	"spot-scraper/internal/components/telemetry"
	"spot-scraper/internal/spot"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	report_client_login         = "client.login"
	report_client_courses       = "client.courses"
	report_client_course_detail = "client.course-detail"
	report_client_topic_detail  = "client.topic-detail"
)

const (
	loginPath   = "/login"
	coursesPath = "/mhs"
)

var tracer = otel.Tracer("spot-scraper/internal/scrapers/portal")

// ErrInvalidCredentials is returned by Login when the portal shows the login form again.
var ErrInvalidCredentials = errors.New("spot client: invalid credentials")

type ClientOptions struct {
	BaseUrl string
	// RequestsPerSecond caps the request rate, 2 when zero.
	RequestsPerSecond float64
	// Timeout applies to every request, 30s when zero.
	Timeout time.Duration
	// Pages receives every fetched page when set.
	Pages PageSink
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	parser spot.Parser
	pages  PageSink
	tel    telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil("telemetry", tel)
	assert.NotEmpty("base url", opts.BaseUrl)

	tel = telemetry.NewScopedAPI("spot_client", tel)

	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	// burst >= 1 so that no request is ever dropped, only delayed
	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		parser:  spot.NewParser(tel),
		pages:   opts.Pages,
		tel:     tel,
	}, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// get fetches a page and returns its markup, non 2xx responses are errors.
func (c *Client) get(ctx context.Context, path string) (string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("fetch %s: unexpected status %s", path, res.Status())
	}
	if c.pages != nil {
		c.pages.Write(path, string(res.Body()))
	}
	return string(res.Body()), nil
}

func (c *Client) Login(ctx context.Context, nim, password string) (err error) {
	ctx, span := tracer.Start(ctx, "Login", trace.WithAttributes(attribute.String("nim", nim)))
	defer func() { endSpan(span, err) }()

	loginError := func(err error) error {
		return fmt.Errorf("spot client: login failed: %w", err)
	}

	markup, err := c.get(ctx, loginPath)
	if err != nil {
		c.tel.ReportBroken(report_client_login, fmt.Errorf("login page request: %w", err))
		return loginError(err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(markup))
	if err != nil {
		c.tel.ReportBroken(report_client_login, fmt.Errorf("parse login page: %w", err))
		return loginError(err)
	}

	token := doc.Find("input[name=_token]").AttrOr("value", "")
	if token == "" {
		err := fmt.Errorf("could not find csrf token")
		c.tel.ReportBroken(report_client_login, err)
		return loginError(err)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"_token":   token,
			"username": nim,
			"password": password,
		}).
		Post(loginPath)
	if err != nil {
		c.tel.ReportBroken(report_client_login, fmt.Errorf("login request: %w", err))
		return loginError(err)
	}
	if res.IsError() {
		err := fmt.Errorf("login request: unexpected status %s", res.Status())
		c.tel.ReportBroken(report_client_login, err)
		return loginError(err)
	}

	landing, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(report_client_login, fmt.Errorf("parse landing page: %w", err))
		return loginError(err)
	}
	if landing.Find("input[type=password]").Length() > 0 {
		c.tel.ReportWarning(report_client_login, "login form shown again", nim)
		return ErrInvalidCredentials
	}

	c.tel.ReportDebug("logged in", nim)
	return nil
}

func (c *Client) Courses(ctx context.Context) (courses []spot.CourseSummary, err error) {
	ctx, span := tracer.Start(ctx, "Courses")
	defer func() { endSpan(span, err) }()

	markup, err := c.get(ctx, coursesPath)
	if err != nil {
		c.tel.ReportBroken(report_client_courses, err)
		return nil, err
	}
	courses, err = c.parser.CourseList(markup)
	if err != nil {
		c.tel.ReportBroken(report_client_courses, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("courses", len(courses)))
	return courses, nil
}

func (c *Client) CourseDetail(ctx context.Context, course spot.CourseSummary) (detail spot.CourseDetail, err error) {
	ctx, span := tracer.Start(ctx, "CourseDetail", trace.WithAttributes(attribute.String("course", course.ID)))
	defer func() { endSpan(span, err) }()

	path, ok := spot.NormalizeHref(course.Href)
	if !ok || path == "" {
		err := fmt.Errorf("course %s has an invalid link %q", course.ID, course.Href)
		c.tel.ReportBroken(report_client_course_detail, err)
		return spot.CourseDetail{}, err
	}

	markup, err := c.get(ctx, path)
	if err != nil {
		c.tel.ReportBroken(report_client_course_detail, err, course.ID)
		return spot.CourseDetail{}, err
	}
	detail, err = c.parser.CourseDetail(markup, course)
	if err != nil {
		c.tel.ReportBroken(report_client_course_detail, err, course.ID)
		return spot.CourseDetail{}, err
	}
	return detail, nil
}

// TopicDetail fetches an accessible topic, topics without a link or ids cannot be
// fetched and yield spot.ErrElementNotFound.
func (c *Client) TopicDetail(ctx context.Context, topic spot.TopicSummary) (detail spot.TopicDetail, err error) {
	ctx, span := tracer.Start(ctx, "TopicDetail")
	defer func() { endSpan(span, err) }()

	if !topic.IsAccessible || topic.Href == nil || topic.ID == nil || topic.CourseID == nil {
		return spot.TopicDetail{}, fmt.Errorf("topic is not accessible: %w", spot.ErrElementNotFound)
	}
	span.SetAttributes(
		attribute.Int64("course", *topic.CourseID),
		attribute.Int64("topic", *topic.ID),
	)

	markup, err := c.get(ctx, *topic.Href)
	if err != nil {
		c.tel.ReportBroken(report_client_topic_detail, err, *topic.Href)
		return spot.TopicDetail{}, err
	}
	detail, err = c.parser.TopicDetail(markup, *topic.CourseID, *topic.ID)
	if err != nil {
		c.tel.ReportBroken(report_client_topic_detail, err, *topic.Href)
		return spot.TopicDetail{}, err
	}
	detail.AccessTime = pickAccessTime(detail.AccessTime, topic.AccessTime)
	return detail, nil
}

// pickAccessTime prefers the time shown on the topic page and falls back to the one
// shown on the course page.
func pickAccessTime(page, listing spot.Timestamp) spot.Timestamp {
	if page.IsZero() {
		return listing
	}
	return page
}
