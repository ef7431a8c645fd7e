// Package optime computes calendar days in the assembly's operating timezone.
// Every "today" boundary in the service goes through these functions with an
// explicit location instead of the process timezone.
package optime

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// DateLayout is the storage and wire form of an operating day.
const DateLayout = "2006-01-02"

// DefaultZone is the fixed UTC+8 fallback used when the IANA database is unavailable.
var DefaultZone = time.FixedZone("UTC+8", 8*60*60)

// LoadLocation resolves an IANA zone name and falls back to DefaultZone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return DefaultZone, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return DefaultZone, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// OperatingDate returns the calendar day of instant in loc, as YYYY-MM-DD.
func OperatingDate(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD operating day.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return t, nil
}

// DayBounds returns the first and last instant of the operating day.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	n := now.With(day)
	return n.BeginningOfDay(), n.EndOfDay(), nil
}

// Clock produces operating days from an injectable time source.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a Clock in loc. A nil nowFn uses time.Now.
func NewClock(loc *time.Location, nowFn func() time.Time) *Clock {
	if loc == nil {
		loc = DefaultZone
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Clock{loc: loc, now: nowFn}
}

// Now returns the current instant in the operating location.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current operating day.
func (c *Clock) Today() string {
	return OperatingDate(c.now(), c.loc)
}

// Location returns the operating location.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// DateOrToday returns date when set and valid, or today when empty.
func (c *Clock) DateOrToday(date string) (string, error) {
	if date == "" {
		return c.Today(), nil
	}
	if _, err := ParseDate(date, c.loc); err != nil {
		return "", err
	}
	return date, nil
}
