package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today returns the calendar day (YYYY-MM-DD) of now in loc.
func Today(c Clock, loc *time.Location) string {
	return LocalNow(c, loc).Format("2006-01-02")
}

// LocalNow returns now expressed in loc, falling back to UTC.
func LocalNow(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return c.Now().In(loc)
}
