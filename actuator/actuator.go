// Package actuator simulates the motion controller of a single telescope mount axis.
//
// An Actuator turns a stream of position/velocity setpoints into a realized trajectory that obeys
// velocity and acceleration limits, and reports its motion regime. It has no clock of its own:
// every operation takes the current time in seconds from the caller. It is not safe for
// concurrent use.
package actuator

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/mountsim/logging"
	"go.viam.com/mountsim/trajectory"
)

// An Actuator is one simulated axis. See the package documentation.
type Actuator struct {
	cfg    Config
	cmd    trajectory.Segment
	curr   *trajectory.Path
	ntrack int
	logger logging.Logger
}

// New returns an actuator at rest at its initial position at time t.
func New(cfg Config, t float64, logger logging.Logger) (*Actuator, error) {
	if err := cfg.Validate("actuator"); err != nil {
		return nil, errors.Wrap(err, "invalid actuator config")
	}
	if logger == nil {
		logger = logging.NewBlankLogger("actuator")
	}
	if cfg.StartPosition != nil {
		// keep the caller's value out of reach
		start := *cfg.StartPosition
		cfg.StartPosition = &start
	}

	seg := trajectory.Segment{T0: t, P0: cfg.initialPosition()}
	a := &Actuator{cfg: cfg, cmd: seg, logger: logger}
	a.curr = mustPath(trajectory.Stopped, seg)
	return a, nil
}

// Config returns the limits the actuator was built with.
func (a *Actuator) Config() Config {
	return a.cfg
}

// Cmd returns the most recent commanded segment. It always has zero acceleration and jerk.
func (a *Actuator) Cmd() trajectory.Segment {
	return a.cmd
}

// Curr returns the realized trajectory.
func (a *Actuator) Curr() *trajectory.Path {
	return a.curr
}

// NTrack returns the number of consecutive setpoints that produced a tracking path.
func (a *Actuator) NTrack() int {
	return a.ntrack
}

// SetCmd commands the actuator to follow position pos moving at velocity vel, starting at time t.
//
// If the actuator is already tracking, the previous setpoint is recent enough and the realized
// state matches the new setpoint, the actuator keeps tracking. Otherwise it slews onto the new
// setpoint, unless it is already there. The slew brakes at full acceleration whenever it must, so
// it only leaves [PMin, PMax] when the starting momentum or the target itself takes it there;
// that is logged as a warning.
func (a *Actuator) SetCmd(pos, vel, t float64) {
	dt := t - a.cmd.T0
	a.cmd = trajectory.Segment{T0: t, P0: pos, V0: vel}
	p, v, _ := a.curr.PVA(t)
	prevKind := a.curr.Kind()

	if prevKind == trajectory.Tracking && dt <= a.cfg.DtMaxTrack && a.coincides(pos-p, vel-v, dt) {
		a.curr = mustPath(trajectory.Tracking, a.cmd)
		a.ntrack++
		return
	}

	segs, onTarget := a.slew(t, p, v, pos, vel)
	if onTarget || a.coincides(pos-p, vel-v, dt) {
		a.curr = mustPath(trajectory.Tracking, a.cmd)
		a.ntrack = 1
		a.logger.Debugw("on target", "t", t, "position", pos, "velocity", vel, "previous", prevKind)
		return
	}
	a.curr = mustPath(trajectory.Slewing, segs...)
	a.ntrack = 0
	if prevKind != trajectory.Slewing {
		a.logger.Debugw("slewing", "t", t, "from", p, "to", pos, "velocity", vel,
			"duration", segs[len(segs)-1].T0-t)
	}
	if lo, hi := span(segs); lo < a.cfg.PMin || hi > a.cfg.PMax {
		a.logger.Warnw("slew leaves position range", "t", t, "min", lo, "max", hi,
			"pmin", a.cfg.PMin, "pmax", a.cfg.PMax)
	}
}

// Stop brings the actuator smoothly to rest, decelerating at the maximum acceleration. The
// commanded segment is left alone.
//
// Segments carry constant acceleration, so the deceleration starts at once rather than ramping
// from the current acceleration.
func (a *Actuator) Stop(t float64) {
	p, v, _ := a.curr.PVA(t)
	a.curr = mustPath(trajectory.Stopping, a.stop(t, p, v)...)
	a.logger.Debugw("stopping", "t", t, "position", p, "velocity", v, "end", a.curr.Last().T0)
}

// Abort halts the actuator immediately where it is at time t, discarding any motion in progress.
// The commanded segment is left alone.
func (a *Actuator) Abort(t float64) {
	p, v, _ := a.curr.PVA(t)
	a.curr = mustPath(trajectory.Stopped, trajectory.Segment{T0: t, P0: p})
	if v != 0 {
		a.logger.Warnw("aborted while moving", "t", t, "position", p, "velocity", v)
	}
}

// Kind returns the motion regime at time t.
//
// A tracking path is reported as slewing until more than NSettle consecutive setpoints have been
// tracked. A stopping path is reported as stopped once t reaches the start of its final segment.
func (a *Actuator) Kind(t float64) trajectory.Kind {
	switch kind := a.curr.Kind(); kind {
	case trajectory.Stopped, trajectory.Slewing:
		return kind
	case trajectory.Stopping:
		if t < a.curr.Last().T0 {
			return trajectory.Stopping
		}
		return trajectory.Stopped
	case trajectory.Tracking:
		if a.ntrack > a.cfg.NSettle {
			return trajectory.Tracking
		}
		return trajectory.Slewing
	default:
		panic(errors.Errorf("unreachable: %v", kind))
	}
}

// coincides reports whether a residual position and velocity error is small enough to have been
// absorbed at maximum acceleration within dt (capped at DtMaxTrack).
func (a *Actuator) coincides(dp, dv, dt float64) bool {
	tau := math.Max(0, math.Min(dt, a.cfg.DtMaxTrack))
	return math.Abs(dv) <= a.cfg.AMax*tau && math.Abs(dp) <= 0.5*a.cfg.AMax*tau*tau
}

func mustPath(kind trajectory.Kind, segs ...trajectory.Segment) *trajectory.Path {
	p, err := trajectory.NewPath(kind, segs...)
	if err != nil {
		panic(err)
	}
	return p
}
