// Package mount groups the simulated axes of a telescope mount.
package mount

import (
	"context"
	"sort"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/mountsim/axis"
	"go.viam.com/mountsim/config"
	"go.viam.com/mountsim/logging"
)

// NewAxisNotFoundError is used when a requested axis does not exist.
func NewAxisNotFoundError(name string) error {
	return errors.Errorf("axis %q not found", name)
}

// A Mount is a set of named axes sharing one clock.
type Mount struct {
	axes   map[string]*axis.Axis
	clk    clock.Clock
	logger logging.Logger
}

// New builds every axis in cfg. Each axis logs through its own sublogger.
func New(cfg *config.Config, clk clock.Clock, logger logging.Logger) (*Mount, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = logging.NewBlankLogger("mount")
	}

	m := &Mount{
		axes:   make(map[string]*axis.Axis, len(cfg.Axes)),
		clk:    clk,
		logger: logger,
	}
	for _, axCfg := range cfg.Axes {
		ax, err := axis.New(axCfg, clk, logger.Sublogger(axCfg.Name))
		if err != nil {
			return nil, err
		}
		m.axes[axCfg.Name] = ax
	}
	logger.Debugw("mount ready", "axes", m.Names())
	return m, nil
}

// Clock returns the clock the axes are driven by.
func (m *Mount) Clock() clock.Clock {
	return m.clk
}

// Names returns the names of all axes, sorted.
func (m *Mount) Names() []string {
	names := lo.Keys(m.axes)
	sort.Strings(names)
	return names
}

// Axis returns the named axis.
func (m *Mount) Axis(name string) (*axis.Axis, error) {
	ax, ok := m.axes[name]
	if !ok {
		return nil, NewAxisNotFoundError(name)
	}
	return ax, nil
}

// TrackTarget commands the named axis to follow position and velocity from now on.
func (m *Mount) TrackTarget(ctx context.Context, name string, position, velocity float64, wrapPositive bool) error {
	ax, err := m.Axis(name)
	if err != nil {
		return err
	}
	return ax.TrackTarget(ctx, position, velocity, wrapPositive)
}

// StopAll brings every axis smoothly to rest.
func (m *Mount) StopAll(ctx context.Context) error {
	return m.forEach(func(ax *axis.Axis) error {
		return ax.Stop(ctx)
	}, "error stopping axis")
}

// AbortAll halts every axis immediately.
func (m *Mount) AbortAll(ctx context.Context) error {
	m.logger.Warn("aborting all axes")
	return m.forEach(func(ax *axis.Axis) error {
		return ax.Abort(ctx)
	}, "error aborting axis")
}

// Statuses returns the state of every axis now, sorted by name.
func (m *Mount) Statuses(ctx context.Context) ([]axis.Status, error) {
	statuses := make([]axis.Status, 0, len(m.axes))
	for _, name := range m.Names() {
		status, err := m.axes[name].Status(ctx)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// forEach applies fn to every axis in name order, attempting all of them.
func (m *Mount) forEach(fn func(ax *axis.Axis) error, msg string) error {
	var allErrs error
	for _, name := range m.Names() {
		if err := fn(m.axes[name]); err != nil {
			allErrs = multierr.Combine(allErrs, errors.Wrapf(err, "%s %q", msg, name))
		}
	}
	return allErrs
}
