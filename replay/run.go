package replay

import (
	"context"
	"math"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/mountsim/axis"
	"go.viam.com/mountsim/logging"
	"go.viam.com/mountsim/mount"
	"go.viam.com/mountsim/utils"
)

// DefaultInterval is the sampling interval used when none is given.
const DefaultInterval = 0.1

// A Row is the status of one axis at one sample time.
type Row struct {
	// T is the sample time in seconds since the start of the replay.
	T float64 `json:"t"`
	axis.Status
}

// A Log is the sampled response of a mount to a script.
type Log struct {
	Interval float64 `json:"interval"`
	Rows     []Row   `json:"rows"`
}

// A Runner replays scripts against a mount driven by a mock clock.
type Runner struct {
	m        *mount.Mount
	clk      *clock.Mock
	interval float64
	logger   logging.Logger
}

// NewRunner returns a runner for m, which must be driven by clk. A non-positive interval selects
// DefaultInterval.
func NewRunner(m *mount.Mount, clk *clock.Mock, interval float64, logger logging.Logger) (*Runner, error) {
	if m.Clock() != clock.Clock(clk) {
		return nil, errors.New("mount must be driven by the replay clock")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logging.NewBlankLogger("replay")
	}
	return &Runner{m: m, clk: clk, interval: interval, logger: logger}, nil
}

// Run applies every event of script at its time and samples all axes every interval, from the
// current clock time up to the end of the script. Events at a sample time are applied before the
// sample is taken.
func (r *Runner) Run(ctx context.Context, script *Script) (*Log, error) {
	start := utils.TimeToSeconds(r.clk.Now())
	end := script.EndTime()
	events := script.Expand()
	nSamples := int(math.Floor(end/r.interval+1e-9)) + 1
	log := &Log{Interval: r.interval, Rows: make([]Row, 0, nSamples*len(r.m.Names()))}

	r.logger.Infow("replay starting", "events", len(events), "duration", end, "interval", r.interval)
	next := 0
	for k := 0; k < nSamples; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ts := float64(k) * r.interval
		for ; next < len(events) && events[next].T <= ts; next++ {
			r.clk.Set(utils.SecondsToTime(start + events[next].T))
			if err := r.apply(ctx, events[next]); err != nil {
				return nil, errors.Wrapf(err, "event at t=%v", events[next].T)
			}
		}

		r.clk.Set(utils.SecondsToTime(start + ts))
		statuses, err := r.m.Statuses(ctx)
		if err != nil {
			return nil, err
		}
		for _, status := range statuses {
			log.Rows = append(log.Rows, Row{T: ts, Status: status})
		}
	}
	if skipped := len(events) - next; skipped > 0 {
		r.logger.Warnw("events after the end of the replay were not applied", "count", skipped)
	}
	r.logger.Infow("replay finished", "samples", nSamples)
	return log, nil
}

func (r *Runner) apply(ctx context.Context, e Event) error {
	r.logger.Debugw("applying event", "t", e.T, "op", e.Op, "axis", e.Axis)
	switch e.Op {
	case OpTrack:
		return r.m.TrackTarget(ctx, e.Axis, e.Position, e.Velocity, e.WrapPositive)
	case OpStop:
		if e.Axis == "" {
			return r.m.StopAll(ctx)
		}
		ax, err := r.m.Axis(e.Axis)
		if err != nil {
			return err
		}
		return ax.Stop(ctx)
	case OpAbort:
		if e.Axis == "" {
			return r.m.AbortAll(ctx)
		}
		ax, err := r.m.Axis(e.Axis)
		if err != nil {
			return err
		}
		return ax.Abort(ctx)
	default:
		return errors.Errorf("unknown op %q", e.Op)
	}
}
