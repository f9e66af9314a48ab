package utils

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidWrapWindow is returned by WrapAngle when the allowed range is not wider than a full turn.
var ErrInvalidWrapWindow = errors.New("angle window must be wider than 360 degrees")

// ModAngDeg returns the angle in the range [0, 360).
func ModAngDeg(ang float64) float64 {
	r := math.Mod(math.Mod(ang, 360)+360, 360)
	if r >= 360 {
		// -tiny + 360 rounds up to 360
		r -= 360
	}
	return r
}

// WrapAngle returns the angle equivalent to angle (modulo 360) that lies in [wrapAt-360, wrapAt),
// where wrapAt is maxAngle when wrapPos is true and minAngle+360 otherwise. This lets an axis
// with more than a full turn of travel pick which of the two overlapping positions to use.
func WrapAngle(angle float64, wrapPos bool, minAngle, maxAngle float64) (float64, error) {
	if maxAngle-minAngle <= 360 {
		return 0, errors.Wrapf(ErrInvalidWrapWindow, "max_angle %v - min_angle %v = %v",
			maxAngle, minAngle, maxAngle-minAngle)
	}
	wrapAt := minAngle + 360
	if wrapPos {
		wrapAt = maxAngle
	}
	lower := wrapAt - 360
	return lower + ModAngDeg(angle-lower), nil
}
