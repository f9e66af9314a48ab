// Package replay drives a simulated mount from a script of timed commands and records how every
// axis responds.
package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// An Op is the command an event sends.
type Op string

// The supported ops.
const (
	OpTrack Op = "track"
	OpStop  Op = "stop"
	OpAbort Op = "abort"
)

// An Event is a command sent to the mount T seconds after the start of the replay.
type Event struct {
	T    float64 `json:"t"`
	Axis string  `json:"axis"`
	Op   Op      `json:"op"`

	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	WrapPositive bool    `json:"wrap_positive"`

	// Until and Every repeat a track event every Every seconds up to and including Until, with
	// the position advancing at Velocity.
	Until float64 `json:"until,omitempty"`
	Every float64 `json:"every,omitempty"`
}

// Validate ensures the event is well formed.
func (e *Event) Validate(path string) error {
	var errs error
	if e.T < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path, errors.Errorf("t %v cannot be negative", e.T)))
	}
	switch e.Op {
	case OpTrack:
		if e.Axis == "" {
			errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(path, "axis"))
		}
		if e.Until != 0 {
			if e.Until < e.T {
				errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
					errors.Errorf("until %v cannot be before t %v", e.Until, e.T)))
			}
			if e.Every <= 0 {
				errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
					errors.Errorf("every %v must be positive when until is set", e.Every)))
			}
		}
	case OpStop, OpAbort:
		if e.Until != 0 || e.Every != 0 {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
				errors.Errorf("op %q cannot repeat", e.Op)))
		}
	default:
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path, errors.Errorf("unknown op %q", e.Op)))
	}
	return errs
}

// A Script is a list of events. Events need not be in time order.
type Script struct {
	// Duration is how long the replay runs. Defaults to the time of the last event.
	Duration float64 `json:"duration,omitempty"`
	Events   []Event `json:"events"`
}

// Validate ensures all events are well formed.
func (s *Script) Validate() error {
	if len(s.Events) == 0 {
		return goutils.NewConfigValidationFieldRequiredError("script", "events")
	}
	var errs error
	if s.Duration < 0 {
		errs = multierr.Append(errs, goutils.NewConfigValidationError("script",
			errors.Errorf("duration %v cannot be negative", s.Duration)))
	}
	for i := range s.Events {
		errs = multierr.Append(errs, s.Events[i].Validate(fmt.Sprintf("events.%d", i)))
	}
	return errs
}

// Expand returns the events with repeated track events unrolled, sorted by time. Events at the
// same time keep their script order.
func (s *Script) Expand() []Event {
	var events []Event
	for _, e := range s.Events {
		if e.Op != OpTrack || e.Until == 0 {
			events = append(events, e)
			continue
		}
		n := int(math.Floor((e.Until-e.T)/e.Every + 1e-9))
		for i := 0; i <= n; i++ {
			dt := float64(i) * e.Every
			step := e
			step.T = e.T + dt
			step.Position = e.Position + e.Velocity*dt
			step.Until, step.Every = 0, 0
			events = append(events, step)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].T < events[j].T
	})
	return events
}

// EndTime returns the configured duration, or the time of the last event.
func (s *Script) EndTime() float64 {
	if s.Duration > 0 {
		return s.Duration
	}
	end := 0.0
	for _, e := range s.Expand() {
		end = math.Max(end, e.T)
	}
	return end
}

// ReadScript reads a script from the given file, substituting environment variables.
func ReadScript(ctx context.Context, filePath string) (*Script, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ScriptFromReader(ctx, bytes.NewReader(buf))
}

// ScriptFromReader reads a script from r. Unknown keys are rejected.
func ScriptFromReader(ctx context.Context, r io.Reader) (*Script, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var attributes map[string]interface{}
	if err := dec.Decode(&attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode Script from json")
	}

	var script Script
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      &script,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode Script")
	}
	if err := script.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid Script")
	}
	return &script, nil
}
