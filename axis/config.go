package axis

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/mountsim/actuator"
)

// WrapConfig describes the cable wrap of an axis with more than a full turn of travel.
type WrapConfig struct {
	MinAngle float64 `json:"min_angle"`
	MaxAngle float64 `json:"max_angle"`
}

// Validate ensures all parts of the config are valid.
func (cfg *WrapConfig) Validate(path string) error {
	if cfg.MaxAngle-cfg.MinAngle <= 360 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("max_angle %v - min_angle %v must be more than 360", cfg.MaxAngle, cfg.MinAngle))
	}
	return nil
}

// Config describes one axis of the mount.
type Config struct {
	Name     string          `json:"name"`
	Actuator actuator.Config `json:"actuator"`
	Wrap     *WrapConfig     `json:"wrap,omitempty"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (cfg *Config) Validate(path string) error {
	var errs error
	if cfg.Name == "" {
		errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(path, "name"))
	}
	errs = multierr.Append(errs, cfg.Actuator.Validate(path+".actuator"))
	if cfg.Wrap != nil {
		if err := cfg.Wrap.Validate(path + ".wrap"); err != nil {
			errs = multierr.Append(errs, err)
		} else if cfg.Wrap.MinAngle < cfg.Actuator.PMin || cfg.Wrap.MaxAngle > cfg.Actuator.PMax {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(path+".wrap",
				errors.Errorf("wrap range [%v, %v] exceeds actuator range [%v, %v]",
					cfg.Wrap.MinAngle, cfg.Wrap.MaxAngle, cfg.Actuator.PMin, cfg.Actuator.PMax)))
		}
	}
	return errs
}
