package actuator

import (
	"math"

	"go.viam.com/mountsim/trajectory"
)

// slew returns the segments of a minimum-time move that starts at position p0 with velocity v0 at
// time t0 and ends on the target ray pos + vel*(t-t0). Each segment has constant acceleration of
// +/-AMax or zero, and the speed never exceeds VMax as long as |v0| and |vel| are within it.
// The last segment lies on the target ray, and onTarget is true if that is the only segment.
//
// A target moving away at VMax or faster cannot be caught. The move then ends with a segment at
// the clamped target velocity that keeps the remaining gap, and onTarget is false.
func (a *Actuator) slew(t0, p0, v0, pos, vel float64) (segs []trajectory.Segment, onTarget bool) {
	amax := a.cfg.AMax

	// Plan in the frame moving with the target, mirrored so that the move is in the positive
	// direction: x is the position error, u the velocity error.
	x := p0 - pos
	u := v0 - vel
	dir := 1.0
	if x+u*math.Abs(u)/(2*amax) > 0 {
		// braking now would stop past the target
		dir = -1
	}
	x *= dir
	u *= dir
	// largest velocity error in the direction of motion that keeps |v| <= VMax
	ulim := math.Max(0, a.cfg.VMax-dir*vel)
	dist := -x

	upeak := math.Sqrt(math.Max(0, amax*dist+u*u/2))
	// without the speed limit the deceleration starts as soon as upeak is reached
	limited := upeak > ulim
	if limited {
		upeak = ulim
	}
	accel := amax
	if upeak < u {
		accel = -amax
	}
	tAccel := math.Abs(upeak-u) / amax
	tDecel := upeak / amax
	dAccel := (upeak*upeak - u*u) / (2 * accel)
	dDecel := upeak * upeak / (2 * amax)
	if limited && upeak == 0 && dist-dAccel > 0 {
		return a.follow(t0, p0, v0, vel), false
	}
	tCoast := 0.0
	if dCoast := dist - dAccel - dDecel; limited && dCoast > 0 && upeak > 0 {
		tCoast = dCoast / upeak
	}

	segs = make([]trajectory.Segment, 0, 4)
	t, p, v := t0, p0, v0
	if tAccel > 0 {
		segs = append(segs, trajectory.Segment{T0: t, P0: p, V0: v, A0: dir * accel})
		vEnd := a.clampVelocity(vel + dir*upeak)
		p += (v + vEnd) / 2 * tAccel
		t += tAccel
		v = vEnd
	}
	if tCoast > 0 {
		segs = append(segs, trajectory.Segment{T0: t, P0: p, V0: v})
		p += v * tCoast
		t += tCoast
	}
	if tDecel > 0 {
		segs = append(segs, trajectory.Segment{T0: t, P0: p, V0: v, A0: -dir * amax})
		t += tDecel
	}
	onTarget = len(segs) == 0
	return append(segs, trajectory.Segment{T0: t, P0: pos + vel*(t-t0), V0: vel}), onTarget
}

// follow returns the segments that bring velocity v0 to the target velocity vel, clamped to the
// speed limit, and hold it from there.
func (a *Actuator) follow(t0, p0, v0, vel float64) []trajectory.Segment {
	vEnd := a.clampVelocity(vel)
	segs := make([]trajectory.Segment, 0, 2)
	t, p := t0, p0
	if dv := vEnd - v0; dv != 0 {
		dt := math.Abs(dv) / a.cfg.AMax
		segs = append(segs, trajectory.Segment{T0: t, P0: p, V0: v0, A0: math.Copysign(a.cfg.AMax, dv)})
		p += (v0 + vEnd) / 2 * dt
		t += dt
	}
	return append(segs, trajectory.Segment{T0: t, P0: p, V0: vEnd})
}

// stop returns the segments that bring motion starting at position p with velocity v at time t0 to
// rest at maximum deceleration. The last segment is at rest.
func (a *Actuator) stop(t0, p, v float64) []trajectory.Segment {
	if v == 0 {
		return []trajectory.Segment{{T0: t0, P0: p}}
	}
	accel := -math.Copysign(a.cfg.AMax, v)
	dt := math.Abs(v) / a.cfg.AMax
	return []trajectory.Segment{
		{T0: t0, P0: p, V0: v, A0: accel},
		{T0: t0 + dt, P0: p + v*dt/2},
	}
}

// span returns the lowest and highest positions reached by segs up to the start of the last one.
func span(segs []trajectory.Segment) (lo, hi float64) {
	lo, hi = segs[0].P0, segs[0].P0
	for i := 1; i < len(segs); i++ {
		prev, next := segs[i-1], segs[i]
		lo, hi = math.Min(lo, next.P0), math.Max(hi, next.P0)
		if prev.A0 == 0 {
			continue
		}
		// reversal inside the segment
		if dt := -prev.V0 / prev.A0; dt > 0 && dt < next.T0-prev.T0 {
			p, _, _ := prev.PVA(prev.T0 + dt)
			lo, hi = math.Min(lo, p), math.Max(hi, p)
		}
	}
	return lo, hi
}

func (a *Actuator) clampVelocity(v float64) float64 {
	return math.Max(-a.cfg.VMax, math.Min(a.cfg.VMax, v))
}
