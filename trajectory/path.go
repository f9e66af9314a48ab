package trajectory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyPath is returned when a Path is constructed without segments.
var ErrEmptyPath = errors.New("path needs at least one segment")

// A Path is a trajectory made of one or more segments tagged with a Kind.
//
// Segment start times must be non-decreasing for PVA to pick the right segment. This is not checked.
// Paths are replaced wholesale rather than edited; MutableSegment exists for test harnesses only.
type Path struct {
	segments []Segment
	kind     Kind
}

// NewPath returns a Path of the given kind. The segments are copied.
func NewPath(kind Kind, segments ...Segment) (*Path, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyPath
	}
	return &Path{
		segments: append([]Segment(nil), segments...),
		kind:     kind,
	}, nil
}

// Kind returns the kind the path was constructed with.
func (p *Path) Kind() Kind {
	return p.kind
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.segments)
}

// Segment returns a copy of the segment at index i.
func (p *Path) Segment(i int) Segment {
	return p.segments[i]
}

// Last returns a copy of the final segment.
func (p *Path) Last() Segment {
	return p.segments[len(p.segments)-1]
}

// Segments returns a copy of all segments.
func (p *Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// MutableSegment returns a pointer to the segment at index i so a test harness can seed starting
// conditions in place. It is not part of normal operation; actuators always build a fresh Path.
func (p *Path) MutableSegment(i int) *Segment {
	return &p.segments[i]
}

// PVA returns the position, velocity and acceleration at time t using the last segment that starts
// at or before t, or the first segment if t precedes all of them.
func (p *Path) PVA(t float64) (float64, float64, float64) {
	return p.segments[p.index(t)].PVA(t)
}

func (p *Path) index(t float64) int {
	// first segment starting strictly after t
	ind := sort.Search(len(p.segments), func(i int) bool {
		return p.segments[i].T0 > t
	})
	if ind > 0 {
		ind--
	}
	return ind
}

func (p *Path) String() string {
	strs := make([]string, 0, len(p.segments))
	for _, s := range p.segments {
		strs = append(strs, s.String())
	}
	return fmt.Sprintf("Path(%s, kind=%s)", strings.Join(strs, ", "), p.kind)
}
