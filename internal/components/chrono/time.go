package chrono

import (
	"time"
	_ "time/tzdata"
)

var portal *time.Location

func init() {
	var err error
	portal, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		portal = time.FixedZone("WIB", 7*60*60)
	}
}

// Portal returns the [*time.Location] the portal displays its times in (Asia/Jakarta).
func Portal() *time.Location {
	return portal
}

// InPortal reinterprets a naive wall clock time (as produced by the extractors) in the
// portal's timezone without shifting the clock reading.
func InPortal(t time.Time) time.Time {
	return Reinterpret(t, portal)
}

// Reinterpret keeps the clock reading of t and attaches loc to it.
func Reinterpret(t time.Time, loc *time.Location) time.Time {
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		loc,
	)
}

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in the portal's timezone.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (s StandardTime) Now() time.Time {
	return time.Now().In(portal)
}

// FixedTime is a TimeAPI that always returns the same instant.
type FixedTime struct {
	At time.Time
}

func (f FixedTime) Now() time.Time {
	return f.At
}
