// Package axis wraps a simulated actuator as one axis of a mount. An Axis stamps commands with the
// time from its clock, maps targets through its cable wrap and is safe for concurrent use.
package axis

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/mountsim/actuator"
	"go.viam.com/mountsim/logging"
	"go.viam.com/mountsim/trajectory"
	"go.viam.com/mountsim/utils"
)

// Status is a snapshot of an axis.
type Status struct {
	Name         string          `json:"name"`
	Time         time.Time       `json:"time"`
	Kind         trajectory.Kind `json:"kind"`
	CmdPosition  float64         `json:"cmd_position"`
	CmdVelocity  float64         `json:"cmd_velocity"`
	Position     float64         `json:"position"`
	Velocity     float64         `json:"velocity"`
	Acceleration float64         `json:"acceleration"`
}

// An Axis is a named actuator with an optional cable wrap.
type Axis struct {
	name   string
	wrap   *WrapConfig
	clk    clock.Clock
	logger logging.Logger

	mu       sync.Mutex
	act      *actuator.Actuator
	lastKind trajectory.Kind
}

// New returns an axis at rest, created at the current time of clk.
func New(cfg Config, clk clock.Clock, logger logging.Logger) (*Axis, error) {
	if err := cfg.Validate("axis"); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = logging.NewBlankLogger(cfg.Name)
	}
	ax := &Axis{name: cfg.Name, clk: clk, logger: logger}
	if cfg.Wrap != nil {
		wrap := *cfg.Wrap
		ax.wrap = &wrap
	}

	t := ax.now()
	act, err := actuator.New(cfg.Actuator, t, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create axis %q", cfg.Name)
	}
	ax.act = act
	ax.lastKind = act.Kind(t)
	return ax, nil
}

// Name returns the name of the axis.
func (ax *Axis) Name() string {
	return ax.name
}

// TrackTarget commands the axis to follow position and velocity from now on. For a wrapped axis
// the position is first mapped into the turn chosen by wrapPositive.
func (ax *Axis) TrackTarget(ctx context.Context, position, velocity float64, wrapPositive bool) error {
	return ax.TrackTargetAt(ctx, ax.now(), position, velocity, wrapPositive)
}

// TrackTargetAt is TrackTarget at an explicit time in seconds.
func (ax *Axis) TrackTargetAt(ctx context.Context, t, position, velocity float64, wrapPositive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ax.wrap != nil {
		wrapped, err := utils.WrapAngle(position, wrapPositive, ax.wrap.MinAngle, ax.wrap.MaxAngle)
		if err != nil {
			return errors.Wrapf(err, "axis %q", ax.name)
		}
		position = wrapped
	}

	ax.mu.Lock()
	defer ax.mu.Unlock()
	ax.act.SetCmd(position, velocity, t)
	ax.noteKind(t)
	return nil
}

// Stop brings the axis smoothly to rest.
func (ax *Axis) Stop(ctx context.Context) error {
	return ax.StopAt(ctx, ax.now())
}

// StopAt is Stop at an explicit time in seconds.
func (ax *Axis) StopAt(ctx context.Context, t float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ax.mu.Lock()
	defer ax.mu.Unlock()
	ax.act.Stop(t)
	ax.noteKind(t)
	return nil
}

// Abort halts the axis immediately.
func (ax *Axis) Abort(ctx context.Context) error {
	return ax.AbortAt(ctx, ax.now())
}

// AbortAt is Abort at an explicit time in seconds.
func (ax *Axis) AbortAt(ctx context.Context, t float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ax.mu.Lock()
	defer ax.mu.Unlock()
	ax.act.Abort(t)
	ax.noteKind(t)
	return nil
}

// Status returns the state of the axis now.
func (ax *Axis) Status(ctx context.Context) (Status, error) {
	return ax.StatusAt(ctx, ax.now())
}

// StatusAt returns the state of the axis at an explicit time in seconds.
func (ax *Axis) StatusAt(ctx context.Context, t float64) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}
	ax.mu.Lock()
	defer ax.mu.Unlock()
	ax.noteKind(t)

	cmdPos, cmdVel, _ := ax.act.Cmd().PVA(t)
	pos, vel, accel := ax.act.Curr().PVA(t)
	return Status{
		Name:         ax.name,
		Time:         utils.SecondsToTime(t),
		Kind:         ax.lastKind,
		CmdPosition:  cmdPos,
		CmdVelocity:  cmdVel,
		Position:     pos,
		Velocity:     vel,
		Acceleration: accel,
	}, nil
}

// noteKind logs changes of the reported motion state. Must be called with mu held.
func (ax *Axis) noteKind(t float64) {
	kind := ax.act.Kind(t)
	if kind == ax.lastKind {
		return
	}
	ax.logger.Debugw("motion state changed", "axis", ax.name, "from", ax.lastKind, "to", kind, "t", t)
	ax.lastKind = kind
}

func (ax *Axis) now() float64 {
	return utils.TimeToSeconds(ax.clk.Now())
}
