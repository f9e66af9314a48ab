// Package config defines the configuration of a simulated mount and how it is read from disk.
package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/mountsim/axis"
	"go.viam.com/mountsim/logging"
)

// A Config describes the axes of a mount.
type Config struct {
	// ConfigFilePath is the path the config was read from, if any.
	ConfigFilePath string `json:"-"`

	LogLevel logging.Level `json:"log_level"`
	Axes     []axis.Config `json:"axes"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (c *Config) Validate() error {
	if len(c.Axes) == 0 {
		return goutils.NewConfigValidationFieldRequiredError("config", "axes")
	}
	var errs error
	for i := range c.Axes {
		errs = multierr.Append(errs, c.Axes[i].Validate(fmt.Sprintf("axes.%d", i)))
	}
	for _, name := range lo.FindDuplicates(lo.Compact(c.AxisNames())) {
		errs = multierr.Append(errs, goutils.NewConfigValidationError("axes",
			errors.Errorf("duplicate axis name %q", name)))
	}
	return errs
}

// AxisNames returns the names of the configured axes in config order.
func (c *Config) AxisNames() []string {
	return lo.Map(c.Axes, func(ax axis.Config, _ int) string {
		return ax.Name
	})
}

// FindAxis returns the config of the named axis.
func (c *Config) FindAxis(name string) (axis.Config, bool) {
	return lo.Find(c.Axes, func(ax axis.Config) bool {
		return ax.Name == name
	})
}
