package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestModAngDeg(t *testing.T) {
	for _, tc := range []struct {
		in, out float64
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{-1, 359},
		{725, 5},
		{-725, 355},
	} {
		test.That(t, ModAngDeg(tc.in), test.ShouldAlmostEqual, tc.out)
	}
	r := ModAngDeg(-1e-15)
	test.That(t, r, test.ShouldBeGreaterThanOrEqualTo, 0)
	test.That(t, r, test.ShouldBeLessThan, 360)
}

func TestWrapAngle(t *testing.T) {
	for _, tc := range []struct {
		name     string
		angle    float64
		wrapPos  bool
		min, max float64
		expected float64
	}{
		{"in positive window", 100, true, -270, 270, 100},
		{"in negative window", 100, false, -270, 270, -260},
		{"below positive window", -100, true, -270, 270, 260},
		{"in both windows", 45, false, -270, 270, 45},
		{"several turns", 1000, true, -270, 270, -80},
		{"at upper edge wraps", 270, true, -270, 270, -90},
		{"at lower edge stays", -270, false, -270, 270, -270},
		{"asymmetric window", 10, true, 0, 400, 370},
		{"asymmetric window negative", 10, false, 0, 400, 10},
		{"asymmetric window wraps", 30, true, -180, 200, 30},
		{"asymmetric window wraps negative", 190, false, -180, 200, -170},
	} {
		t.Run(tc.name, func(t *testing.T) {
			wrapped, err := WrapAngle(tc.angle, tc.wrapPos, tc.min, tc.max)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, wrapped, test.ShouldAlmostEqual, tc.expected)
			test.That(t, wrapped, test.ShouldBeGreaterThanOrEqualTo, tc.min)
			test.That(t, wrapped, test.ShouldBeLessThan, tc.max)
			test.That(t, ModAngDeg(wrapped-tc.angle), test.ShouldAlmostEqual, 0)
		})
	}

	_, err := WrapAngle(10, true, 0, 360)
	test.That(t, errors.Is(err, ErrInvalidWrapWindow), test.ShouldBeTrue)
	_, err = WrapAngle(10, true, 90, 0)
	test.That(t, errors.Is(err, ErrInvalidWrapWindow), test.ShouldBeTrue)
}
