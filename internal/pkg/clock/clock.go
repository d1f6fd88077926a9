package clock

import "time"

// Clock supplies the current time in the company timezone. Core services
// never read process-global time directly; action timestamps and "today"
// are always derived from a Clock so tests can pin the instant.
type Clock interface {
	Now() time.Time
	Today() time.Time
	Location() *time.Location
}

type companyClock struct {
	loc *time.Location
}

// New returns a Clock fixed to the given IANA timezone name. Falls back
// to UTC when the name cannot be resolved.
func New(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &companyClock{loc: loc}
}

func (c *companyClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *companyClock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

func (c *companyClock) Location() *time.Location {
	return c.loc
}

// Fixed returns a Clock pinned to a single instant, for tests.
func Fixed(at time.Time) Clock {
	return &fixedClock{at: at}
}

type fixedClock struct {
	at time.Time
}

func (c *fixedClock) Now() time.Time { return c.at }

func (c *fixedClock) Today() time.Time {
	return time.Date(c.at.Year(), c.at.Month(), c.at.Day(), 0, 0, 0, 0, c.at.Location())
}

func (c *fixedClock) Location() *time.Location { return c.at.Location() }
