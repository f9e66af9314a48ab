package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/mountsim/config"
	"go.viam.com/mountsim/logging"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// newLogger returns a logger writing to the error writer of the app, at debug level if requested.
// It also becomes the global logger.
func newLogger(c *cli.Context) logging.Logger {
	level := logging.WARN
	if c.Bool(debugFlag) {
		level = logging.DEBUG
	}
	logger := logging.NewWriterLogger("mountsim", c.App.ErrWriter, level)
	logging.ReplaceGlobal(logger)
	return logger
}

// loadConfig reads the config named by the config flag. Unless debug logging was requested the
// log level of the config is applied to logger.
func loadConfig(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	path := c.String(configFlag)
	if path == "" {
		return nil, errors.Errorf("a config file is required; pass --%s", configFlag)
	}
	cfg, err := config.Read(c.Context, path, logger)
	if err != nil {
		return nil, err
	}
	if !c.Bool(debugFlag) {
		logger.SetLevel(cfg.LogLevel)
	}
	return cfg, nil
}
