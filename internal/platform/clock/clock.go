package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time. Calendar-day math (streaks)
// depends on the local location, so it is not normalised to UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
