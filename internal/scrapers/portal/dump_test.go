package portal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"spot-scraper/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestPageFilename(t *testing.T) {
	require.Equal(t, "mhs_topik_1201_456.html", pageFilename("/mhs/topik/1201/456"))
	require.Equal(t, "mhs.html", pageFilename("/mhs?page=2"))
	require.Equal(t, "index.html", pageFilename("/"))
}

func TestClientDumpsPages(t *testing.T) {
	server := newPortal(t)
	ctx := context.Background()

	dir := filepath.Join(t.TempDir(), "pages")
	sink, err := NewDirSink(dir, &telemetry.Recorder{})
	require.NoError(t, err)

	client, err := NewClient(ClientOptions{
		BaseUrl:           server.URL,
		RequestsPerSecond: 100,
		Pages:             sink,
	}, &telemetry.Recorder{})
	require.NoError(t, err)

	require.NoError(t, client.Login(ctx, testNim, testPassword))
	_, err = client.Courses(ctx)
	require.NoError(t, err)

	saved, err := os.ReadFile(filepath.Join(dir, "mhs.html"))
	require.NoError(t, err)
	require.Equal(t, string(fixture(t, "courses.html")), string(saved))

	_, err = os.Stat(filepath.Join(dir, "login.html"))
	require.NoError(t, err)
}

func TestDirSinkReportsFailedWrites(t *testing.T) {
	rec := &telemetry.Recorder{}
	dir := filepath.Join(t.TempDir(), "pages")
	sink, err := NewDirSink(dir, rec)
	require.NoError(t, err)

	sink.Write("/mhs", "<html></html>")
	require.Empty(t, rec.Reports("warning", report_dump_write))

	require.NoError(t, os.RemoveAll(dir))
	sink.Write("/mhs/topik/1201/456", "<html></html>")

	reports := rec.Reports("warning", report_dump_write)
	require.Len(t, reports, 1)
	require.Equal(t, "dir_sink: "+report_dump_write, reports[0].ID)
}
