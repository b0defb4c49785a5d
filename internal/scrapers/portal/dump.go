package portal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spot-scraper/internal/components/assert"
	"spot-scraper/internal/components/telemetry"
)

const report_dump_write = "dump.write"

// PageSink receives the markup of every page the client fetches.
type PageSink interface {
	Write(path, markup string)
}

// DirSink writes pages into a directory so they can be read again offline. A page that
// cannot be written is reported and skipped, it never fails the fetch.
type DirSink struct {
	directory string
	tel       telemetry.API
}

func NewDirSink(dir string, tel telemetry.API) (DirSink, error) {
	assert.NotNil("telemetry", tel)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return DirSink{}, err
	}
	return DirSink{
		directory: dir,
		tel:       telemetry.NewScopedAPI("dir_sink", tel),
	}, nil
}

// pageFilename turns a portal path into a flat file name, /mhs/topik/1/2 becomes
// mhs_topik_1_2.html.
func pageFilename(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "index.html"
	}
	return strings.ReplaceAll(path, "/", "_") + ".html"
}

func (d DirSink) Write(path, markup string) {
	name := filepath.Join(d.directory, pageFilename(path))
	err := os.WriteFile(name, []byte(markup), 0o600)
	if err != nil {
		d.tel.ReportWarning(report_dump_write, fmt.Errorf("%s: %w", path, err))
	}
}
