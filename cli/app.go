// Package cli contains the mountsim command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/mountsim/replay"
)

const (
	// Global flags.
	configFlag = "config"
	debugFlag  = "debug"

	replayFlagScript      = "script"
	replayFlagInterval    = "interval"
	replayFlagDuration    = "duration"
	replayFlagFormat      = "format"
	replayFlagSummaryOnly = "summary-only"

	wrapFlagAngle    = "angle"
	wrapFlagMin      = "min"
	wrapFlagMax      = "max"
	wrapFlagPositive = "positive"
)

// Version is replaced by LD flags.
var Version = ""

var app = &cli.App{
	Name:            "mountsim",
	Usage:           "simulate the axes of a telescope mount",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:   "axes",
			Usage:  "list the configured axes and their limits",
			Action: AxesAction,
		},
		{
			Name:      "replay",
			Usage:     "replay a script of timed commands against the configured mount",
			UsageText: "mountsim --config FILE replay --script FILE [options]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     replayFlagScript,
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "read events from `FILE`",
				},
				&cli.Float64Flag{
					Name:  replayFlagInterval,
					Value: replay.DefaultInterval,
					Usage: "sample every `SECONDS`",
				},
				&cli.Float64Flag{
					Name:  replayFlagDuration,
					Usage: "run for `SECONDS` instead of the duration of the script",
				},
				&cli.StringFlag{
					Name:  replayFlagFormat,
					Value: string(replay.FormatTable),
					Usage: "output format: table, csv, markdown or json",
				},
				&cli.BoolFlag{
					Name:  replayFlagSummaryOnly,
					Usage: "print only the per axis summary",
				},
			},
			Action: ReplayAction,
		},
		{
			Name:  "wrap",
			Usage: "map an angle into the cable wrap window of an axis",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:     wrapFlagAngle,
					Required: true,
					Usage:    "angle in degrees",
				},
				&cli.Float64Flag{
					Name:     wrapFlagMin,
					Required: true,
					Usage:    "minimum wrap angle in degrees",
				},
				&cli.Float64Flag{
					Name:     wrapFlagMax,
					Required: true,
					Usage:    "maximum wrap angle in degrees",
				},
				&cli.BoolFlag{
					Name:  wrapFlagPositive,
					Usage: "prefer the turn ending at the maximum angle",
				},
			},
			Action: WrapAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
