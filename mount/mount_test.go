package mount

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"

	"go.viam.com/mountsim/actuator"
	"go.viam.com/mountsim/axis"
	"go.viam.com/mountsim/config"
	"go.viam.com/mountsim/logging"
	"go.viam.com/mountsim/trajectory"
)

func altAz() *config.Config {
	return &config.Config{
		Axes: []axis.Config{
			{
				Name: "elevation",
				Actuator: actuator.Config{
					PMin: 0, PMax: 90, VMax: 5, AMax: 2, DtMaxTrack: 0.1, NSettle: 1,
				},
			},
			{
				Name: "azimuth",
				Actuator: actuator.Config{
					PMin: -270, PMax: 270, VMax: 10, AMax: 4, DtMaxTrack: 0.1, NSettle: 1,
				},
				Wrap: &axis.WrapConfig{MinAngle: -270, MaxAngle: 270},
			},
		},
	}
}

func TestNew(t *testing.T) {
	clk := clock.NewMock()
	m, err := New(altAz(), clk, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Names(), test.ShouldResemble, []string{"azimuth", "elevation"})
	test.That(t, m.Clock(), test.ShouldEqual, clk)

	ax, err := m.Axis("elevation")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ax.Name(), test.ShouldEqual, "elevation")

	_, err = m.Axis("rotator")
	test.That(t, err, test.ShouldBeError, NewAxisNotFoundError("rotator"))

	cfg := altAz()
	cfg.Axes[1].Name = "elevation"
	_, err = New(cfg, clk, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "duplicate axis name")
}

func TestTrackStopAbort(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()
	m, err := New(altAz(), clk, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, m.TrackTarget(ctx, "azimuth", 20, 0, true), test.ShouldBeNil)
	test.That(t, m.TrackTarget(ctx, "elevation", 30, 0, true), test.ShouldBeNil)
	test.That(t, m.TrackTarget(ctx, "rotator", 30, 0, true), test.ShouldNotBeNil)
	clk.Add(time.Second)

	statuses, err := m.Statuses(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(statuses), test.ShouldEqual, 2)
	test.That(t, statuses[0].Name, test.ShouldEqual, "azimuth")
	test.That(t, statuses[1].Name, test.ShouldEqual, "elevation")
	for _, status := range statuses {
		test.That(t, status.Kind, test.ShouldEqual, trajectory.Slewing)
		test.That(t, status.Velocity, test.ShouldBeGreaterThan, 0)
		test.That(t, status.Time.Equal(clk.Now()), test.ShouldBeTrue)
	}

	test.That(t, m.StopAll(ctx), test.ShouldBeNil)
	statuses, err = m.Statuses(ctx)
	test.That(t, err, test.ShouldBeNil)
	for _, status := range statuses {
		test.That(t, status.Kind, test.ShouldEqual, trajectory.Stopping)
	}

	// at 2 and 4 deg/s^2 both axes are at rest within 2 seconds of being stopped
	clk.Add(3 * time.Second)
	statuses, err = m.Statuses(ctx)
	test.That(t, err, test.ShouldBeNil)
	for _, status := range statuses {
		test.That(t, status.Kind, test.ShouldEqual, trajectory.Stopped)
		test.That(t, status.Velocity, test.ShouldEqual, 0)
	}

	logger, logs := logging.NewObservedTestLogger(t)
	m, err = New(altAz(), clk, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.TrackTarget(ctx, "azimuth", 20, 0, true), test.ShouldBeNil)
	clk.Add(time.Second)
	test.That(t, m.AbortAll(ctx), test.ShouldBeNil)
	statuses, err = m.Statuses(ctx)
	test.That(t, err, test.ShouldBeNil)
	for _, status := range statuses {
		test.That(t, status.Kind, test.ShouldEqual, trajectory.Stopped)
	}
	test.That(t, logs.FilterMessage("aborting all axes").Len(), test.ShouldEqual, 1)
	aborted := logs.FilterMessage("aborted while moving").All()
	test.That(t, len(aborted), test.ShouldEqual, 1)
	test.That(t, aborted[0].LoggerName, test.ShouldEqual, "azimuth")
	fromAzimuth := logs.Filter(func(e observer.LoggedEntry) bool {
		return e.LoggerName == "azimuth"
	})
	test.That(t, fromAzimuth.Len(), test.ShouldBeGreaterThan, 1)
	test.That(t, logs.FilterMessage("aborting all axes").All()[0].LoggerName, test.ShouldEqual, "")
}

func TestCanceledContext(t *testing.T) {
	m, err := New(altAz(), clock.NewMock(), nil)
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = m.StopAll(ctx)
	test.That(t, err, test.ShouldNotBeNil)
	errs := multierr.Errors(err)
	test.That(t, len(errs), test.ShouldEqual, 2)
	test.That(t, strings.Contains(errs[0].Error(), `"azimuth"`), test.ShouldBeTrue)
	test.That(t, strings.Contains(errs[1].Error(), `"elevation"`), test.ShouldBeTrue)

	test.That(t, m.AbortAll(ctx), test.ShouldNotBeNil)
	_, err = m.Statuses(ctx)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}
