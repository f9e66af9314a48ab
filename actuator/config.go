package actuator

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// Config holds the kinematic limits and settle behavior of an actuator. Positions are in degrees,
// velocities in deg/sec, accelerations in deg/sec^2 and times in seconds.
type Config struct {
	PMin float64 `json:"pmin"`
	PMax float64 `json:"pmax"`
	VMax float64 `json:"vmax"`
	AMax float64 `json:"amax"`
	// DtMaxTrack is the maximum age of the previous setpoint for a new one to continue tracking.
	DtMaxTrack float64 `json:"dtmax_track"`
	// NSettle is the number of consecutive tracking updates that are still reported as slewing.
	NSettle int `json:"nsettle"`
	// StartPosition is used as the initial position if it lies in [PMin, PMax), else PMin is used.
	// Defaults to 0.
	StartPosition *float64 `json:"start_position,omitempty"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (cfg *Config) Validate(path string) error {
	var errs error
	if cfg.PMin >= cfg.PMax {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("pmin %v must be less than pmax %v", cfg.PMin, cfg.PMax)))
	}
	if cfg.VMax <= 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("vmax %v must be positive", cfg.VMax)))
	}
	if cfg.AMax <= 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("amax %v must be positive", cfg.AMax)))
	}
	if cfg.NSettle < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("nsettle %d cannot be negative", cfg.NSettle)))
	}
	return errs
}

// initialPosition returns the start position if it lies in [PMin, PMax), else PMin.
func (cfg *Config) initialPosition() float64 {
	p := 0.0
	if cfg.StartPosition != nil {
		p = *cfg.StartPosition
	}
	if p >= cfg.PMin && p < cfg.PMax {
		return p
	}
	return cfg.PMin
}
