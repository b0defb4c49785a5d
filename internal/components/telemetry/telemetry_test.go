package telemetry

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	scoped := NewScopedAPI("spot", NewScopedAPI("parser", rec))

	err := errors.New("boom")
	scoped.ReportBroken("course-list", err)
	scoped.ReportWarning("course-list", "row 1")
	scoped.ReportDebug("rows", 3)
	scoped.ReportCount("courses", 2)

	broken := rec.Reports("broken", "")
	require.Len(t, broken, 1)
	require.Equal(t, "parser: spot: course-list", broken[0].ID)
	require.Equal(t, []any{err}, broken[0].Params)

	require.Len(t, rec.Reports("warning", "course-list"), 1)
	require.Len(t, rec.Reports("debug", "rows"), 1)
	require.Equal(t, []any{int64(2)}, rec.Reports("count", "")[0].Params)
	require.Empty(t, rec.Reports("warning", "course-detail"))
}

func TestSlogAPI(t *testing.T) {
	var out strings.Builder
	initSlog(&out, true)
	t.Cleanup(func() { InitSlog(false) })

	api := SlogAPI{}
	api.ReportBroken("client.courses", errors.New("boom"), "/mhs")
	api.ReportDebug("topic detail", 456)

	logged := out.String()
	require.Contains(t, logged, "id=client.courses")
	require.Contains(t, logged, "err=boom")
	require.Contains(t, logged, "params.0=/mhs")
	require.Contains(t, logged, "params.0=456")
}
