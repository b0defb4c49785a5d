package spot

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// the portal switched separators between page revisions, seconds are optional
var dateTimeLayouts = []string{
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
}

// ParseDateTime parses a day-month-year date-time, ok is false if no layout matches.
func ParseDateTime(text string) (t time.Time, ok bool) {
	text = strings.TrimSpace(text)
	for _, layout := range dateTimeLayouts {
		parsed, err := time.Parse(layout, text)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ParseTimestamp keeps the trimmed text along with its parsed value (if any).
func ParseTimestamp(text string) Timestamp {
	text = strings.TrimSpace(text)
	if text == "" {
		return Timestamp{}
	}
	ts := Timestamp{Raw: text}
	if parsed, ok := ParseDateTime(text); ok {
		ts.Time = &parsed
	}
	return ts
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}

// TrailingSegment returns the last `/` separated segment of a path as is.
func TrailingSegment(path string) string {
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}

// SegmentFromPath returns the n-th `/` separated segment of path, the leading slash of
// an absolute path counts as an empty segment 0.
func SegmentFromPath(path string, n int) string {
	segments := strings.Split(stripQuery(path), "/")
	if n < 0 || n >= len(segments) {
		return ""
	}
	return segments[n]
}

func parseID(segment string) (int64, bool) {
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// IDFromPath parses the last segment of a path or url as a numeric id. A trailing slash
// leaves an empty last segment and so no id.
func IDFromPath(path string) (int64, bool) {
	segments := strings.Split(stripQuery(path), "/")
	return parseID(segments[len(segments)-1])
}

// NormalizeHref reduces an absolute url to its path, relative links are returned as is.
// ok is false when an absolute url cannot be parsed.
func NormalizeHref(href string) (path string, ok bool) {
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return href, true
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return parsed.Path, true
}

// ParseCredits parses a credit count, anything that is not a non-negative integer is 0.
func ParseCredits(text string) int {
	credits, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || credits < 0 {
		return 0
	}
	return credits
}

// ParseScore parses a score with either decimal separator, unparsable scores are 0.
// NaN and infinities count as unparsable since they cannot be encoded as json.
func ParseScore(text string) float64 {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	score, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// SubmissionFileHref fixes the link the portal displays for an uploaded answer file,
// the displayed `/tugas/mhs` path 404s while `/tugas` serves the file.
func SubmissionFileHref(href string) string {
	return strings.ReplaceAll(href, "/tugas/mhs", "/tugas")
}

// YoutubeID returns the video id of an embedded player url.
func YoutubeID(src string) (string, bool) {
	const marker = "embed/"
	i := strings.LastIndex(src, marker)
	if i < 0 {
		return "", false
	}
	id := src[i+len(marker):]
	if j := strings.IndexByte(id, '?'); j >= 0 {
		id = id[:j]
	}
	if id == "" {
		return "", false
	}
	return id, true
}
