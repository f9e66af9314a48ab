package utils

import (
	"math"
	"time"
)

// TimeToSeconds converts a wall clock time to floating point seconds since the unix epoch, the
// time scale the actuator works in.
func TimeToSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// SecondsToTime is the inverse of TimeToSeconds, to the nearest nanosecond.
func SecondsToTime(secs float64) time.Time {
	return time.Unix(0, int64(math.Round(secs * float64(time.Second))))
}
