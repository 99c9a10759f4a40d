package dateutil

import (
	"errors"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Truncate drops the clock part and pins the date to UTC. Every date the
// ledger stores or compares goes through here.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Parse(v string) (time.Time, error) {
	t, err := time.Parse(Layout, v)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Clock supplies the evaluation date to code paths that are triggered by
// callers without one (HTTP handlers, the scheduler).
type Clock interface {
	Today() time.Time
}

type SystemClock struct{}

func (SystemClock) Today() time.Time {
	return Truncate(time.Now().UTC())
}

type FixedClock time.Time

func (c FixedClock) Today() time.Time {
	return Truncate(time.Time(c))
}
