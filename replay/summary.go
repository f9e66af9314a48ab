package replay

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/mountsim/trajectory"
)

// An AxisSummary condenses the rows of one axis.
type AxisSummary struct {
	Name    string `json:"name"`
	Samples int    `json:"samples"`

	MaxSpeed float64 `json:"max_speed"`
	MaxAccel float64 `json:"max_accel"`

	// Tracking errors are |commanded - actual position| over the samples reported as tracking.
	MaxTrackingError float64 `json:"max_tracking_error"`
	RMSTrackingError float64 `json:"rms_tracking_error"`

	// TimeIn is the time spent in each motion state, counting each sample as one interval.
	TimeIn map[trajectory.Kind]float64 `json:"time_in"`
	// Transitions counts changes of motion state between consecutive samples.
	Transitions int `json:"transitions"`

	FinalKind     trajectory.Kind `json:"final_kind"`
	FinalPosition float64         `json:"final_position"`
}

// Summarize returns one summary per axis, in the order the axes appear in the log.
func (l *Log) Summarize() []AxisSummary {
	byAxis := lo.GroupBy(l.Rows, func(row Row) string {
		return row.Name
	})
	names := lo.Uniq(lo.Map(l.Rows, func(row Row, _ int) string {
		return row.Name
	}))

	summaries := make([]AxisSummary, 0, len(names))
	for _, name := range names {
		rows := byAxis[name]
		speeds := lo.Map(rows, func(row Row, _ int) float64 { return math.Abs(row.Velocity) })
		accels := lo.Map(rows, func(row Row, _ int) float64 { return math.Abs(row.Acceleration) })
		trackErrs := lo.FilterMap(rows, func(row Row, _ int) (float64, bool) {
			return math.Abs(row.CmdPosition - row.Position), row.Kind == trajectory.Tracking
		})

		summary := AxisSummary{
			Name:          name,
			Samples:       len(rows),
			MaxSpeed:      floats.Max(speeds),
			MaxAccel:      floats.Max(accels),
			TimeIn:        map[trajectory.Kind]float64{},
			FinalKind:     rows[len(rows)-1].Kind,
			FinalPosition: rows[len(rows)-1].Position,
		}
		if len(trackErrs) != 0 {
			summary.MaxTrackingError = floats.Max(trackErrs)
			squares := lo.Map(trackErrs, func(e float64, _ int) float64 { return e * e })
			// only fails on empty input
			//nolint:errcheck
			meanSquare, _ := stats.Mean(squares)
			summary.RMSTrackingError = math.Sqrt(meanSquare)
		}
		for i, row := range rows {
			summary.TimeIn[row.Kind] += l.Interval
			if i > 0 && rows[i-1].Kind != row.Kind {
				summary.Transitions++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
