package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/mountsim/logging"
)

const altAzConfig = `{
	"log_level": "debug",
	"axes": [
		{
			"name": "azimuth",
			"actuator": {"pmin": -270, "pmax": 270, "vmax": 10, "amax": 5, "dtmax_track": 0.1, "nsettle": 2},
			"wrap": {"min_angle": -270, "max_angle": 270}
		},
		{
			"name": "elevation",
			"actuator": {"pmin": 5, "pmax": 90, "vmax": 5, "amax": 2.5, "dtmax_track": 0.1, "nsettle": 2,
				"start_position": 45}
		}
	]
}`

func TestFromReader(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	cfg, err := FromReader(context.Background(), "altaz.json", strings.NewReader(altAzConfig), logger)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, "altaz.json")
	test.That(t, cfg.LogLevel, test.ShouldEqual, logging.DEBUG)
	test.That(t, cfg.AxisNames(), test.ShouldResemble, []string{"azimuth", "elevation"})

	az, ok := cfg.FindAxis("azimuth")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, az.Actuator.AMax, test.ShouldEqual, 5)
	test.That(t, az.Actuator.NSettle, test.ShouldEqual, 2)
	test.That(t, az.Actuator.StartPosition, test.ShouldBeNil)
	test.That(t, az.Wrap, test.ShouldNotBeNil)
	test.That(t, az.Wrap.MaxAngle, test.ShouldEqual, 270)

	el, ok := cfg.FindAxis("elevation")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, el.Wrap, test.ShouldBeNil)
	test.That(t, el.Actuator.StartPosition, test.ShouldNotBeNil)
	test.That(t, *el.Actuator.StartPosition, test.ShouldEqual, 45)

	_, ok = cfg.FindAxis("rotator")
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, logs.FilterMessage("loaded config").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("ignoring unknown config keys").Len(), test.ShouldEqual, 0)
}

func TestFromReaderDefaults(t *testing.T) {
	cfg, err := FromReader(context.Background(), "", strings.NewReader(`{
		"axes": [{"name": "a", "actuator": {"pmin": 0, "pmax": 1, "vmax": 1, "amax": 1}}]
	}`), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.LogLevel, test.ShouldEqual, logging.INFO)
	test.That(t, cfg.Axes[0].Actuator.DtMaxTrack, test.ShouldEqual, 0)
	test.That(t, cfg.Axes[0].Actuator.NSettle, test.ShouldEqual, 0)
}

func TestFromReaderUnknownKeys(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	_, err := FromReader(context.Background(), "", strings.NewReader(`{
		"telescope": "big",
		"axes": [{"name": "a", "gear": 3, "actuator": {"pmin": 0, "pmax": 1, "vmax": 1, "amax": 1}}]
	}`), logger)
	test.That(t, err, test.ShouldBeNil)

	warnings := logs.FilterMessage("ignoring unknown config keys").All()
	test.That(t, len(warnings), test.ShouldEqual, 1)
	keys, ok := warnings[0].ContextMap()["keys"].([]interface{})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, len(keys), test.ShouldEqual, 2)
}

func TestFromReaderErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		json string
		errs []string
	}{
		{"not json", `{"axes": [`, []string{"failed to decode Config from json"}},
		{"no axes", `{}`, []string{`"axes" is required`}},
		{"bad level", `{"log_level": "loud", "axes": []}`, []string{"unknown log level"}},
		{
			"fractional nsettle",
			`{"axes": [{"name": "a", "actuator": {"pmin": 0, "pmax": 1, "vmax": 1, "amax": 1, "nsettle": 1.5}}]}`,
			[]string{"failed to decode Config", "nsettle"},
		},
		{
			"every problem reported",
			`{"axes": [
				{"name": "a", "actuator": {"pmin": 1, "pmax": 0, "vmax": 1, "amax": 1}},
				{"actuator": {"pmin": 0, "pmax": 1, "vmax": 0, "amax": 1}}
			]}`,
			[]string{"axes.0.actuator", "pmin 1 must be less than pmax 0", `"name" is required`, "vmax 0 must be positive"},
		},
		{
			"duplicate names",
			`{"axes": [
				{"name": "a", "actuator": {"pmin": 0, "pmax": 1, "vmax": 1, "amax": 1}},
				{"name": "a", "actuator": {"pmin": 0, "pmax": 1, "vmax": 1, "amax": 1}}
			]}`,
			[]string{`duplicate axis name "a"`},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromReader(context.Background(), "", strings.NewReader(tc.json), logging.NewTestLogger(t))
			test.That(t, err, test.ShouldNotBeNil)
			for _, msg := range tc.errs {
				test.That(t, err.Error(), test.ShouldContainSubstring, msg)
			}
		})
	}
}

func TestFromReaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FromReader(ctx, "", strings.NewReader(altAzConfig), nil)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}

func TestRead(t *testing.T) {
	t.Setenv("MOUNTSIM_AZ_VMAX", "7.5")
	path := filepath.Join(t.TempDir(), "mount.json")
	test.That(t, os.WriteFile(path, []byte(`{
		"axes": [{"name": "azimuth", "actuator": {"pmin": -270, "pmax": 270, "vmax": ${MOUNTSIM_AZ_VMAX}, "amax": 5}}]
	}`), 0o600), test.ShouldBeNil)

	cfg, err := Read(context.Background(), path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, cfg.Axes[0].Actuator.VMax, test.ShouldEqual, 7.5)

	_, err = Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestReadSampleConfig(t *testing.T) {
	cfg, err := Read(context.Background(), filepath.Join("..", "etc", "configs", "altaz.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.AxisNames(), test.ShouldResemble, []string{"azimuth", "elevation"})
	test.That(t, cfg.LogLevel, test.ShouldEqual, logging.INFO)
}
