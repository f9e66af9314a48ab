// Package trajectory describes piecewise constant-jerk motion of a single axis.
package trajectory

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the motion regime of a path, and after settle filtering, of an actuator.
type Kind int

// The four motion regimes. The zero value is Stopped.
const (
	Stopped Kind = iota
	Tracking
	Slewing
	Stopping
)

func (k Kind) String() string {
	switch k {
	case Stopped:
		return "Stopped"
	case Tracking:
		return "Tracking"
	case Slewing:
		return "Slewing"
	case Stopping:
		return "Stopping"
	}
	return fmt.Sprintf("Unknown(%d)", int(k))
}

// KindFromString parses the name of a Kind, ignoring case.
func KindFromString(s string) (Kind, error) {
	for _, k := range []Kind{Stopped, Tracking, Slewing, Stopping} {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return Stopped, errors.Errorf("unknown motion kind %q", s)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := KindFromString(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
