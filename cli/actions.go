package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/benbjohnson/clock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/mountsim/mount"
	"go.viam.com/mountsim/replay"
	"go.viam.com/mountsim/utils"
)

// AxesAction is the corresponding Action for 'axes'.
func AxesAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Range", "Max Speed", "Max Accel", "Track Window", "Settle", "Wrap"})
	for _, ax := range cfg.Axes {
		wrap := ""
		if ax.Wrap != nil {
			wrap = fmt.Sprintf("[%g, %g]", ax.Wrap.MinAngle, ax.Wrap.MaxAngle)
		}
		t.AppendRow(table.Row{
			ax.Name,
			fmt.Sprintf("[%g, %g)", ax.Actuator.PMin, ax.Actuator.PMax),
			fmt.Sprintf("%g deg/s", ax.Actuator.VMax),
			fmt.Sprintf("%g deg/s^2", ax.Actuator.AMax),
			fmt.Sprintf("%gs", ax.Actuator.DtMaxTrack),
			ax.Actuator.NSettle,
			wrap,
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// ReplayAction is the corresponding Action for 'replay'.
func ReplayAction(c *cli.Context) error {
	logger := newLogger(c)
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	format, err := replay.FormatFromString(c.String(replayFlagFormat))
	if err != nil {
		return err
	}
	script, err := replay.ReadScript(c.Context, c.String(replayFlagScript))
	if err != nil {
		return errors.Wrapf(err, "cannot read script %q", c.String(replayFlagScript))
	}
	if duration := c.Float64(replayFlagDuration); duration > 0 {
		script.Duration = duration
	}

	// replays run on simulated time starting at the unix epoch
	clk := clock.NewMock()
	m, err := mount.New(cfg, clk, logger.Sublogger("mount"))
	if err != nil {
		return err
	}
	runner, err := replay.NewRunner(m, clk, c.Float64(replayFlagInterval), logger.Sublogger("replay"))
	if err != nil {
		return err
	}
	log, err := runner.Run(c.Context, script)
	if err != nil {
		return err
	}

	if !c.Bool(replayFlagSummaryOnly) {
		if err := replay.WriteLog(c.App.Writer, log, format); err != nil {
			return err
		}
	}
	return replay.WriteSummaries(c.App.Writer, log.Summarize(), format)
}

// WrapAction is the corresponding Action for 'wrap'.
func WrapAction(c *cli.Context) error {
	wrapped, err := utils.WrapAngle(
		c.Float64(wrapFlagAngle),
		c.Bool(wrapFlagPositive),
		c.Float64(wrapFlagMin),
		c.Float64(wrapFlagMax),
	)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%g", wrapped)
	return nil
}

// VersionAction is the corresponding Action for 'version'.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	if c.Bool(debugFlag) {
		printf(c.App.Writer, "%s", info.String())
	}
	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	revision := "?"
	if rev, ok := settings["vcs.revision"]; ok && len(rev) >= 8 {
		revision = rev[:8]
		if settings["vcs.modified"] == "true" {
			revision += "+"
		}
	}
	version := Version
	if version == "" {
		version = "(dev)"
	}
	printf(c.App.Writer, "Version %s Git=%s Go=%s", version, revision, info.GoVersion)
	return nil
}
