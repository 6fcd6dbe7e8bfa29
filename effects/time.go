package effects

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

type TimeSpan = timespan.TimeSpan

func NewTimeSpan(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

const epsilon = time.Millisecond

// TimeSpanAround bounds an instant with the clock tolerance used across
// the library.
func TimeSpanAround(t time.Time) TimeSpan {
	return timespan.BetweenTimes(t.Add(-1*epsilon), t.Add(epsilon))
}

func Now() TimeSpan {
	return TimeSpanAround(time.Now())
}

type TimeBounded interface {
	TimeSpan() TimeSpan
}
