package trajectory

import (
	"fmt"
	"strings"
)

// A Segment is one piece of constant-jerk motion starting at T0. Times are in seconds, positions
// in degrees, and the derivatives in matching units.
//
// No bounds are enforced on any field.
type Segment struct {
	T0 float64 // start time
	P0 float64 // position at T0
	V0 float64 // velocity at T0
	A0 float64 // acceleration
	J  float64 // jerk
}

// PVA returns the position, velocity and acceleration at time t, extrapolating in either direction.
//
// Jerk only contributes to position: velocity and acceleration are reported as if the segment had
// zero jerk. Consumers depend on these exact formulas.
func (s Segment) PVA(t float64) (float64, float64, float64) {
	dt := t - s.T0
	p := s.P0 + dt*(s.V0+dt*(0.5*s.A0+dt*s.J/6))
	v := s.V0 + dt*s.A0
	return p, v, s.A0
}

func (s Segment) String() string {
	fields := []string{fmt.Sprintf("t0=%g", s.T0)}
	for _, f := range []struct {
		name string
		val  float64
	}{
		{"p0", s.P0},
		{"v0", s.V0},
		{"a0", s.A0},
		{"j", s.J},
	} {
		if f.val != 0 {
			fields = append(fields, fmt.Sprintf("%s=%g", f.name, f.val))
		}
	}
	return fmt.Sprintf("Segment(%s)", strings.Join(fields, ", "))
}
