package telemetry

// API is what every component reports through instead of logging directly, so tests
// can assert on reports with a Recorder.
type API interface {
	// ReportBroken reports a component that failed in a way someone should look at.
	//
	// `id` names the component and method, not the detail that failed: a failed request
	// in the portal client's CourseDetail is `client.course-detail`, the detail goes in
	// params (usually a wrapped error). Ids are lowercase, with underscores inside a
	// component name and dashes inside a method name.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something that is not broken but unexpected, like a table
	// row that does not look like a course. Ids follow ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports progress that is only interesting while debugging.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the size of something at this point in time, counts are
	// samples and should not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, like a sub logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(id string) string {
	return s.namespace + ": " + id
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}
